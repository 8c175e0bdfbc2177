package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cargoline/backoffice/internal/core/ports"
)

// App holds the dependencies CLI commands use. RoleStore is opened lazily so
// commands that only read local files never touch the database.
type App struct {
	OpenRoleStore func(ctx context.Context) (store ports.RoleStore, closeFn func(), err error)
}

// NewRootCmd creates the top-level "docctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "docctl",
		Short:         "Back-office administration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRolesCmd(app),
		newTotalsCmd(),
	)

	return root
}
