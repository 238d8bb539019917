package ui

import (
	"fmt"
	"strings"

	"github.com/vietdv277/mmgmt/pkg/types"
)

// Column widths for the object table
var objectColumnWidths = []int{4, 48, 14, 12, 10, 12}

// RenderObjectTable renders remote objects in a styled box table. The
// leading index column drives the search action loop.
func RenderObjectTable(objects []types.Object) string {
	headers := []string{"#", "Key", "StorageClass", "Modified", "GBs", "Restore"}
	widths := objectColumnWidths

	var sb strings.Builder

	writeBorder(&sb, widths, TopLeft, TopT, TopRight)

	// Header row
	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range headers {
		cell := " " + padRight(h, widths[i]) + " "
		sb.WriteString(HeaderStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	writeBorder(&sb, widths, LeftT, Cross, RightT)

	// Data rows
	for i, obj := range objects {
		sb.WriteString(BorderStyle.Render(Vertical))

		cell := " " + padRight(fmt.Sprintf("%d", i), widths[0]) + " "
		sb.WriteString(IndexStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		cell = " " + padRight(obj.Key, widths[1]) + " "
		sb.WriteString(KeyStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		cell = " " + padRight(obj.StorageClass, widths[2]) + " "
		sb.WriteString(ClassStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		modified := ""
		if !obj.LastModified.IsZero() {
			modified = obj.LastModified.Format("2006-01-02")
		}
		cell = " " + padRight(modified, widths[3]) + " "
		sb.WriteString(MutedStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		cell = " " + padRight(fmt.Sprintf("%.2f", obj.SizeGB()), widths[4]) + " "
		sb.WriteString(MutedStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		cell = " " + padRight(restoreShort(obj), widths[5]) + " "
		sb.WriteString(MutedStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		sb.WriteString("\n")
	}

	writeBorder(&sb, widths, BottomLeft, BottomT, BottomRight)

	sb.WriteString(fmt.Sprintf("  %d objects\n", len(objects)))
	return sb.String()
}

// RenderObjectDetails renders the full metadata of one object.
func RenderObjectDetails(obj *types.Object) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(HeaderStyle.Render("Object Details"))
	sb.WriteString("\n")
	sb.WriteString(MutedStyle.Render("───────────────────────────────"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Key:          %s\n", KeyStyle.Render(obj.Key)))
	sb.WriteString(fmt.Sprintf("  Size:         %d bytes (%.2f GB)\n", obj.Size, obj.SizeGB()))
	sb.WriteString(fmt.Sprintf("  StorageClass: %s\n", obj.StorageClass))
	if !obj.LastModified.IsZero() {
		sb.WriteString(fmt.Sprintf("  LastModified: %s\n", obj.LastModified.Format("2006-01-02 15:04:05")))
	}
	if obj.ETag != "" {
		sb.WriteString(fmt.Sprintf("  ETag:         %s\n", MutedStyle.Render(obj.ETag)))
	}
	if obj.Restore != "" {
		sb.WriteString(fmt.Sprintf("  Restore:      %s\n", obj.Restore))
	}
	return sb.String()
}

func restoreShort(obj types.Object) string {
	switch {
	case strings.Contains(obj.Restore, `ongoing-request="true"`):
		return "incomplete"
	case strings.Contains(obj.Restore, `ongoing-request="false"`):
		return "complete"
	case obj.Archived():
		return "none"
	default:
		return ""
	}
}

func writeBorder(sb *strings.Builder, widths []int, left, mid, right string) {
	sb.WriteString(BorderStyle.Render(left))
	for i, w := range widths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
		if i < len(widths)-1 {
			sb.WriteString(BorderStyle.Render(mid))
		}
	}
	sb.WriteString(BorderStyle.Render(right))
	sb.WriteString("\n")
}
