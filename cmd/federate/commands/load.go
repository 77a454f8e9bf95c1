package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/federate/internal/app"
	"go.trai.ch/federate/internal/core/domain"
)

func (c *CLI) newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <remote> <module>",
		Short: "Print the URL an exposed module of a remote resolves to",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			remoteEntry, _ := cmd.Flags().GetString("remote-entry")

			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}

			// A remote entry given on the command line is enough on its own.
			if _, err := c.app.InitFederation(cmd.Context(), cfg); err != nil {
				if remoteEntry == "" || !errors.Is(err, domain.ErrNoManifest) {
					return err
				}
			}

			url, err := c.app.LoadRemoteModule(cmd.Context(), cfg, app.ModuleRequest{
				RemoteName:    args[0],
				ExposedModule: args[1],
				RemoteEntry:   remoteEntry,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
			return err
		},
	}
	cmd.Flags().StringP("remote-entry", "e", "", "Remote entry URL used when the remote is unknown or moved")
	return cmd
}
