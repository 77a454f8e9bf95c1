package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.trai.ch/federate/internal/ui/output"
	"go.trai.ch/federate/internal/ui/report"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the persisted shared externals and remotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(c.newCacheListCmd())
	cmd.AddCommand(c.newCacheClearCmd())
	return cmd
}

func (c *CLI) newCacheListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the persisted shared externals and remotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			snapshot, err := c.app.CacheList(cfg)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snapshot)
			}
			return report.New(cmd.OutOrStdout(), output.Plain(cfg.Plain)...).Cache(snapshot.Shared, snapshot.Remotes)
		},
	}
	cmd.Flags().Bool("json", false, "Print the cache as JSON")
	return cmd
}

func (c *CLI) newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the persisted shared externals and remotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			return c.app.ClearCache(cfg)
		},
	}
}
