package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pvidovic/estima/internal/cli/formatter"
	"github.com/pvidovic/estima/internal/domain"
	"github.com/spf13/cobra"
)

func newPhasesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phases",
		Short: "Inspect and edit project phases",
	}
	cmd.AddCommand(
		newPhasesShowCmd(app),
		newPhasesSetEffortCmd(app),
		newPhasesSetManDaysCmd(app),
		newPhasesSelectSupplierCmd(app),
		newPhasesValidateCmd(app),
	)
	return cmd
}

func newPhasesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the phase table",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(context.Background())
			if err != nil {
				return err
			}
			if err := s.requireProject(); err != nil {
				return err
			}
			fmt.Print(formatter.FormatPhases(s.engine, s.currency()))
			return nil
		},
	}
}

func parseRole(raw string) (domain.Role, error) {
	if !domain.ValidRoles[raw] {
		return "", fmt.Errorf("invalid role %q (want G1, G2, TA or PM)", raw)
	}
	return domain.Role(raw), nil
}

func newPhasesSetEffortCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-effort <phase> <role> <percent>",
		Short: "Set one role's effort percentage on a phase",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := parseRole(args[1])
			if err != nil {
				return err
			}
			pct, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid percentage %q: %w", args[2], err)
			}

			ctx := context.Background()
			s, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			if err := s.requireProject(); err != nil {
				return err
			}
			if err := s.engine.SetEffort(args[0], role, pct); err != nil {
				return err
			}
			if err := s.save(ctx); err != nil {
				return err
			}

			report := s.engine.ValidateAll()
			for _, p := range report.Phases {
				if p.ID == args[0] && p.EffortStatus != domain.EffortValid {
					fmt.Printf("Note: %s effort now totals %.0f%%\n", p.Name, p.EffortTotal)
				}
			}
			fmt.Printf("Set %s %s effort to %.1f%%\n", args[0], role, pct)
			return nil
		},
	}
}

func newPhasesSetManDaysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-mandays <phase> <man-days>",
		Short: "Set a phase's man-days (the development phase is derived)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid man-days %q: %w", args[1], err)
			}

			ctx := context.Background()
			s, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			if err := s.requireProject(); err != nil {
				return err
			}
			if err := s.engine.SetManDays(args[0], md); err != nil {
				return err
			}
			if err := s.save(ctx); err != nil {
				return err
			}

			fmt.Printf("Set %s to %.1f man-days\n", args[0], md)
			return nil
		},
	}
}

func newPhasesSelectSupplierCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select-supplier <role> <resource-id>",
		Short: "Pick the aggregate supplier billed for a role (empty id clears)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := parseRole(args[0])
			if err != nil {
				return err
			}
			id := ""
			if len(args) == 2 {
				id = args[1]
			}

			ctx := context.Background()
			s, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			if err := s.requireProject(); err != nil {
				return err
			}
			if id != "" && !s.resolver.Validate(domain.CollectionSuppliers, id) &&
				!s.resolver.Validate(domain.CollectionInternalResources, id) {
				return fmt.Errorf("unknown resource %q", id)
			}

			s.engine.SelectSupplier(role, id)
			if err := s.save(ctx); err != nil {
				return err
			}

			if id == "" {
				fmt.Printf("Cleared %s supplier (default rate applies)\n", role)
			} else {
				fmt.Printf("Selected %s for %s (rate %.0f)\n", id, role, s.engine.ResourceRate(role))
			}
			return nil
		},
	}
}

func newPhasesValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate all phases",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(context.Background())
			if err != nil {
				return err
			}
			if err := s.requireProject(); err != nil {
				return err
			}
			fmt.Print(formatter.FormatValidation(s.engine.ValidateAll()))
			return nil
		},
	}
}
