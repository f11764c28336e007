package cli

import (
	"github.com/spf13/cobra"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/app"
)

func NewServeCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New(root.Env, root.ConfigPath).Run()
		},
	}
}
