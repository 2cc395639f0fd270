package main

import (
	"os"

	"vocabook/internal/handler"

	"github.com/spf13/cobra"
)

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(handler.NewRootCmd()))
}
