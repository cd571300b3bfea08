package cli

import (
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Publish one manual relay toggle request",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Toggle(cmd.Context())
	},
}
