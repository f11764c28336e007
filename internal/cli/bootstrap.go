package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/app"
)

func NewBootstrapCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Recreate the application database and apply the setup scripts",
		Long:  "Drops and recreates the application database, then runs every setup script. All existing task data is lost.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.New(root.Env, root.ConfigPath).Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bootstrap complete: %d tasks\n", n)
			return nil
		},
	}
}
