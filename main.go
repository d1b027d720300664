package main

import (
	"fmt"
	"os"
)

// Version is the go-manpage release, set at link time with
// -ldflags "-X main.Version=v1.2.3".
var Version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "go-manpage:", err)
		os.Exit(1)
	}
}
