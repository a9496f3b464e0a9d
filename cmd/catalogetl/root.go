package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"catalogetl/internal/config"
)

// configPath is bound to the root --config flag and read by every
// subcommand.
var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "catalogetl",
		Short:         "Catalog export cleaner and warehouse loader",
		Long:          "catalogetl fetches the product-catalog CSV export, applies the fixed cleaning rules, and replace-loads the result into the warehouse table.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newValidateConfigCmd())
	return cmd
}

func newValidateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config",
		Short: "Check the effective configuration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			issues := config.Validate(cfg)
			for _, i := range issues {
				fmt.Fprintln(os.Stderr, i)
			}
			if config.Errors(issues) {
				return fmt.Errorf("configuration has errors")
			}
			fmt.Println("configuration ok")
			return nil
		},
	}
}
