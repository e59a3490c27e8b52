package main

import (
	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/menuboard/pkg/logger"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("%s %s\n", logger.Module, logger.Version)
		},
	}
}
