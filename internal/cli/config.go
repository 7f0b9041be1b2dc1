package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hyprtile/pkg/config"
)

// configCommand prints the configuration in TOML.
func (c *CLI) configCommand() *cobra.Command {
	var (
		defaults bool
		path     bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

Without flags the config file (--config, or the default path) is loaded,
validated and printed with every default filled in. Use --default for the
built-in configuration, which makes a good starting file:

  hyprtile config --default > ~/.config/hyprtile/hyprtile.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path {
				p := c.configPath
				if p == "" {
					var err error
					if p, err = config.DefaultPath(); err != nil {
						return err
					}
				}
				fmt.Println(p)
				return nil
			}

			cfg := config.Default()
			if !defaults {
				var err error
				if cfg, err = c.loadConfig(); err != nil {
					return fmt.Errorf("load config: %w", err)
				}
			}
			return config.Encode(os.Stdout, cfg)
		},
	}

	cmd.Flags().BoolVar(&defaults, "default", false, "print the built-in defaults")
	cmd.Flags().BoolVar(&path, "path", false, "print the config file path")

	return cmd
}
