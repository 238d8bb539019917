package main

import "github.com/vietdv277/mmgmt/cmd"

func main() {
	cmd.Execute()
}
