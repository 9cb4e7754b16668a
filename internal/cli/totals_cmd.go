package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pvidovic/estima/internal/cli/formatter"
	"github.com/pvidovic/estima/internal/export"
	"github.com/spf13/cobra"
)

func newTotalsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show project man-day and cost totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(context.Background())
			if err != nil {
				return err
			}
			if err := s.requireProject(); err != nil {
				return err
			}
			fmt.Print(formatter.FormatTotals(s.engine.Totals(), s.currency()))
			return nil
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show configuration provenance counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatStats(s.resolver.Stats()))
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the phase breakdown as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(context.Background())
			if err != nil {
				return err
			}
			if err := s.requireProject(); err != nil {
				return err
			}

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating export file: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := export.WritePhaseBreakdownCSV(w, s.engine); err != nil {
				return err
			}
			if out != "" {
				fmt.Printf("Exported to %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (stdout when empty)")
	return cmd
}
