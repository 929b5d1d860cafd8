package main

import (
	"os"

	"github.com/SMU-RES/smu-course-review/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
