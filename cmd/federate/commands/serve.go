package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolved import map over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			return c.app.Serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringP("addr", "a", "", "Listen address, overrides federate.yaml")
	return cmd
}
