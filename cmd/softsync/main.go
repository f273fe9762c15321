package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/style"
)

func main() {
	rootCmd := NewRootCmd()
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(err.Error()))
		if errors.IsUsage(err) {
			fmt.Fprintln(os.Stderr)
			_ = cmd.Help()
		}
		os.Exit(1)
	}
}
