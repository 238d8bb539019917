package search

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vietdv277/mmgmt/internal/ui"
)

// LoopOptions tune the action loop. DestDir is where downloads land.
type LoopOptions struct {
	DestDir string
}

// ActionLoop runs the synchronous menu over a search result: present the
// choices, read a selection, invoke the action, and return to the menu
// until exit. Input is read from in so tests can drive the loop with a
// scripted sequence; EOF behaves like exit. Malformed input and invalid
// indexes re-prompt and never terminate the loop.
func (e *Engine) ActionLoop(ctx context.Context, res *Result, in io.Reader, out io.Writer, opts LoopOptions) error {
	if len(res.Remote) == 0 {
		fmt.Fprintln(out, "no remote matches to act on")
		return nil
	}

	reader := bufio.NewReader(in)
	dl := e.downloader(opts.DestDir)

	for {
		fmt.Fprintln(out, "\nactions: download, delete, inspect, exit")
		choice, ok := readLine(reader, out, "action> ")
		if !ok {
			return nil
		}

		switch strings.ToLower(choice) {
		case "d", "download":
			idx, ok := e.pickIndex(reader, out, len(res.Remote))
			if !ok {
				return nil
			}
			dest, err := dl.Download(ctx, res.Remote[idx].Key)
			if err != nil {
				fmt.Fprintf(out, "download failed: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "downloaded to %s\n", dest)

		case "del", "delete", "rm":
			idx, ok := e.pickIndex(reader, out, len(res.Remote))
			if !ok {
				return nil
			}
			obj := res.Remote[idx]
			fmt.Fprintf(out, "delete %s (%.2f GB, %s)? [y/N] ", obj.Key, obj.SizeGB(), obj.StorageClass)
			answer, ok := readLine(reader, out, "")
			if !ok {
				return nil
			}
			if !isYes(answer) {
				fmt.Fprintln(out, "aborted")
				continue
			}
			if err := e.store.Delete(ctx, obj.Key); err != nil {
				fmt.Fprintf(out, "delete failed: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "%s deleted\n", obj.Key)

		case "i", "inspect", "status":
			idx, ok := e.pickIndex(reader, out, len(res.Remote))
			if !ok {
				return nil
			}
			obj, err := e.store.Head(ctx, res.Remote[idx].Key)
			if err != nil {
				fmt.Fprintf(out, "inspect failed: %v\n", err)
				continue
			}
			fmt.Fprint(out, ui.RenderObjectDetails(obj))

		case "q", "quit", "exit":
			return nil

		case "":
			continue

		default:
			fmt.Fprintf(out, "unknown action %q\n", choice)
		}
	}
}

// pickIndex prompts until the user enters a valid index into the result
// table. Returns ok=false only on EOF.
func (e *Engine) pickIndex(reader *bufio.Reader, out io.Writer, n int) (int, bool) {
	for {
		line, ok := readLine(reader, out, fmt.Sprintf("which object? [0-%d] ", n-1))
		if !ok {
			return 0, false
		}
		idx, err := strconv.Atoi(line)
		if err != nil || idx < 0 || idx >= n {
			fmt.Fprintf(out, "invalid selection %q\n", line)
			continue
		}
		return idx, true
	}
}

func readLine(reader *bufio.Reader, out io.Writer, prompt string) (string, bool) {
	if prompt != "" {
		fmt.Fprint(out, prompt)
	}
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}
