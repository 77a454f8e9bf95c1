// Package commands implements the CLI commands for the federate resolver.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/federate/internal/app"
	"go.trai.ch/federate/internal/build"
	"go.trai.ch/federate/internal/core/domain"
)

// CLI represents the command line interface for federate.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	LoadConfig(cwd string, overrides app.Overrides) (*domain.Config, error)
	InitFederation(ctx context.Context, cfg *domain.Config) (*domain.ImportMap, error)
	LoadRemoteModule(ctx context.Context, cfg *domain.Config, req app.ModuleRequest) (string, error)
	Watch(ctx context.Context, cwd string, overrides app.Overrides) error
	Serve(ctx context.Context, cfg *domain.Config) error
	CacheList(cfg *domain.Config) (app.CacheSnapshot, error)
	ClearCache(cfg *domain.Config) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "federate",
		Short:         "Resolve micro-frontend remotes into a browser import map",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("manifest", "m", "", "Manifest URL or path, overrides federate.yaml")
	flags.Bool("strict", false, "Fail when a remote entry cannot be fetched")
	flags.String("storage", "", "Storage driver: file, sqlite, or memory")
	flags.Bool("clear", false, "Discard persisted shared externals and remotes before resolving")
	flags.String("log-level", "", "Log level: debug, info, warn, or error")
	flags.Bool("log-json", false, "Write logs as JSON")
	flags.String("output-mode", "auto", "Terminal output: auto, styled, or plain")
	flags.Bool("ci", false, "Use plain output (shorthand for --output-mode=plain)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newLoadCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// overrides collects the persistent and command specific flags that override federate.yaml.
func overrides(cmd *cobra.Command) app.Overrides {
	flags := cmd.Flags()
	o := app.Overrides{}
	o.Manifest, _ = flags.GetString("manifest")
	o.Strict, _ = flags.GetBool("strict")
	o.Storage, _ = flags.GetString("storage")
	o.Clear, _ = flags.GetBool("clear")
	o.LogLevel, _ = flags.GetString("log-level")
	o.LogJSON, _ = flags.GetBool("log-json")
	o.OutputMode, _ = flags.GetString("output-mode")
	if ci, _ := flags.GetBool("ci"); ci {
		o.OutputMode = "plain"
	}
	if flags.Lookup("out") != nil {
		o.Output, _ = flags.GetString("out")
		o.Format, _ = flags.GetString("format")
	}
	if flags.Lookup("addr") != nil {
		o.Addr, _ = flags.GetString("addr")
	}
	return o
}

// loadConfig loads the configuration of the working directory with the flags of cmd applied.
func (c *CLI) loadConfig(cmd *cobra.Command) (*domain.Config, error) {
	return c.app.LoadConfig(".", overrides(cmd))
}
