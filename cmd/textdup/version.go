package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/textdup/textdup/internal/version"
)

// NewVersionCmd creates the version cobra command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Info())
		},
	}
}
