package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/infrastructure/policy"
)

func newRolesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Inspect and import permission policies",
	}

	cmd.AddCommand(
		newRolesValidateCmd(),
		newRolesImportCmd(app),
	)

	return cmd
}

func newRolesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a policy file and print the granted permissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := policy.Load(args[0])
			if err != nil {
				return err
			}
			return renderRoles(cmd.OutOrStdout(), src.Roles())
		},
	}
}

func newRolesImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Validate a policy file and upsert its roles into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := policy.Load(args[0])
			if err != nil {
				return err
			}
			roles := src.Roles()
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%d roles valid, nothing written\n", len(roles))
				return nil
			}

			store, closeFn, err := app.OpenRoleStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			for _, role := range roles {
				if err := store.SaveRole(cmd.Context(), role); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", role.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate only")
	return cmd
}

var actionFlags = []struct {
	action domain.Action
	letter string
}{
	{domain.ActionCreate, "C"},
	{domain.ActionRead, "R"},
	{domain.ActionUpdate, "U"},
	{domain.ActionDelete, "D"},
}

// renderRoles prints one row per (role, resource) with CRUD letters.
func renderRoles(w io.Writer, roles []*domain.Role) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROLE\tRESOURCE\tGRANTS")
	for _, role := range roles {
		resources := make([]string, 0, len(role.Permissions))
		for res := range role.Permissions {
			resources = append(resources, string(res))
		}
		sort.Strings(resources)

		for _, res := range resources {
			var grants strings.Builder
			for _, f := range actionFlags {
				if role.Allows(domain.Resource(res), f.action) {
					grants.WriteString(f.letter)
				} else {
					grants.WriteString("-")
				}
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", role.Name, res, grants.String())
		}
	}
	return tw.Flush()
}
