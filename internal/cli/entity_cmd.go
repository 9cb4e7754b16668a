package cli

import (
	"context"
	"fmt"

	"github.com/pvidovic/estima/internal/cli/formatter"
	"github.com/pvidovic/estima/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resourceFlags carries the flag values shared by add and update.
type resourceFlags struct {
	id           string
	name         string
	role         string
	department   string
	realRate     float64
	officialRate float64
	global       bool
}

func addResourceFlags(fs *pflag.FlagSet, f *resourceFlags) {
	fs.StringVar(&f.id, "id", "", "Entry id (generated when empty)")
	fs.StringVar(&f.name, "name", "", "Display name")
	fs.StringVar(&f.role, "role", "", "Role (G1, G2, TA, PM)")
	fs.StringVar(&f.department, "department", "", "Department")
	fs.Float64Var(&f.realRate, "real-rate", 0, "Real day rate")
	fs.Float64Var(&f.officialRate, "official-rate", 0, "Official day rate")
	fs.BoolVar(&f.global, "global", false, "Write into the global configuration")
}

// newEntityCmd builds the command tree for one resource collection.
// Suppliers and internal resources share shape and behavior, so one
// constructor serves both.
func newEntityCmd(app *App, kind domain.CollectionKind, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	cmd.AddCommand(
		newEntityAddCmd(app, kind),
		newEntityListCmd(app, kind),
		newEntityUpdateCmd(app, kind),
		newEntityRemoveCmd(app, kind),
	)
	return cmd
}

func newEntityAddCmd(app *App, kind domain.CollectionKind) *cobra.Command {
	var f resourceFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.name == "" {
				return fmt.Errorf("--name is required")
			}
			if !domain.ValidRoles[f.role] {
				return fmt.Errorf("invalid role %q (want G1, G2, TA or PM)", f.role)
			}

			ctx := context.Background()
			s, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			scope, err := s.scope(f.global)
			if err != nil {
				return err
			}

			entry := domain.ResourceEntry{
				ID:           f.id,
				Name:         f.name,
				Role:         domain.Role(f.role),
				Department:   f.department,
				RealRate:     f.realRate,
				OfficialRate: f.officialRate,
				Status:       domain.StatusActive,
			}
			if err := s.resolver.UpsertResource(kind, entry, scope); err != nil {
				return err
			}
			if err := s.save(ctx); err != nil {
				return err
			}

			fmt.Printf("Added %s %s\n", kind.Label(), f.name)
			return nil
		},
	}

	addResourceFlags(cmd.Flags(), &f)
	return cmd
}

func newEntityListCmd(app *App, kind domain.CollectionKind) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resolved entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(context.Background())
			if err != nil {
				return err
			}

			res := s.resolver.Resolve()
			entries := res.Suppliers
			if kind == domain.CollectionInternalResources {
				entries = res.InternalResources
			}
			fmt.Print(formatter.FormatResources(entries))
			return nil
		},
	}
}

func newEntityUpdateCmd(app *App, kind domain.CollectionKind) *cobra.Command {
	var f resourceFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if f.role != "" && !domain.ValidRoles[f.role] {
				return fmt.Errorf("invalid role %q (want G1, G2, TA or PM)", f.role)
			}

			ctx := context.Background()
			s, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			scope, err := s.scope(f.global)
			if err != nil {
				return err
			}
			if !s.resolver.Validate(kind, id) {
				return fmt.Errorf("unknown %s %q", kind.Label(), id)
			}

			// Project scope stores only the changed fields as an
			// override; global scope rewrites the full entry.
			entry := domain.ResourceEntry{
				ID:           id,
				Name:         f.name,
				Role:         domain.Role(f.role),
				Department:   f.department,
				RealRate:     f.realRate,
				OfficialRate: f.officialRate,
			}
			if scope == domain.ScopeGlobal {
				current, _ := s.resolver.FindResource(kind, id)
				entry = domain.MergeResourceEntry(current, entry)
				entry.IsOverridden = false
			}
			if err := s.resolver.UpsertResource(kind, entry, scope); err != nil {
				return err
			}
			if err := s.save(ctx); err != nil {
				return err
			}

			fmt.Printf("Updated %s\n", s.resolver.DisplayName(kind, id))
			return nil
		},
	}

	addResourceFlags(cmd.Flags(), &f)
	return cmd
}

func newEntityRemoveCmd(app *App, kind domain.CollectionKind) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an entry from this project (global entries are soft-deleted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			if err := s.requireProject(); err != nil {
				return err
			}

			name := s.resolver.DisplayName(kind, args[0])
			s.resolver.Delete(kind, args[0])
			if err := s.save(ctx); err != nil {
				return err
			}

			fmt.Printf("Removed %s\n", name)
			return nil
		},
	}
}
