// Package cli defines the taskboard command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
)

// Version is stamped at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Env        string
}

var validEnvs = []string{consts.ENV_DEVELOPMENT, consts.ENV_PRODUCTION, consts.ENV_TEST}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "taskboard",
		Short:         "Multi-tenant task tracking service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, e := range validEnvs {
				if e == opts.Env {
					return nil
				}
			}
			return fmt.Errorf("invalid env %q: must be one of %v", opts.Env, validEnvs)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", consts.DEFAULT_CONFIG_PATH, "config file (yaml or json)")
	cmd.PersistentFlags().StringVar(&opts.Env, "env", consts.ENV_DEVELOPMENT, "running environment")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewBootstrapCommand(opts))
	cmd.AddCommand(NewVersionCommand())
	return cmd
}
