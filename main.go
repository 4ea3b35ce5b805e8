package main

import (
	"context"
	"os"

	"blogcms/service"
)

var exit = os.Exit

func main() {
	exit(RealMain(os.Args[1:]))
}

// RealMain runs the command line and returns the process exit code.
func RealMain(args []string) int {
	return service.Execute(context.Background(), args, os.Stdout, os.Stderr)
}
