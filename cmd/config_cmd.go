package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/operator-console/internal/config"
)

// NewConfigCmd creates the config command group
func NewConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a commented default configuration file to the user config
directory. Existing files are never overwritten.

Examples:
  operator config init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfigFile()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Config file created: %s\n", path)
			return nil
		},
	})
	return cmd
}
