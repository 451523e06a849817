package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loykin/vercelenv/cmd/vercelenv/config"
	"github.com/loykin/vercelenv/internal/constants"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a sample config file (default " + constants.DefaultConfigPath + ")",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := constants.DefaultConfigPath
		if len(args) > 0 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		if err := config.WriteSample(path, force); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing file")
}
