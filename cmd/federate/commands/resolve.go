package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/federate/internal/app"
	"go.trai.ch/federate/internal/ui/output"
	"go.trai.ch/federate/internal/ui/report"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the configured remotes into an import map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			if watch {
				return c.app.Watch(cmd.Context(), ".", overrides(cmd))
			}

			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}

			importMap, err := c.app.InitFederation(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if !cfg.Output.WritesFile() {
				data, err := app.RenderImportMap(cfg.Output.Format, importMap)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return report.New(cmd.OutOrStdout(), output.Plain(cfg.Plain)...).Summary(importMap)
		},
	}
	cmd.Flags().StringP("out", "o", "", "Import map output file, \"-\" prints it to stdout")
	cmd.Flags().StringP("format", "f", "", "Import map format: json or html")
	cmd.Flags().BoolP("watch", "w", false, "Re-resolve whenever the config or a local manifest changes")
	return cmd
}
