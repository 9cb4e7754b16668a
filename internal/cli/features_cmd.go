package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pvidovic/estima/internal/cli/formatter"
	"github.com/pvidovic/estima/internal/domain"
	"github.com/pvidovic/estima/internal/importer"
	"github.com/spf13/cobra"
)

func newFeaturesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Manage the project's feature list",
	}
	cmd.AddCommand(
		newFeaturesImportCmd(app),
		newFeaturesListCmd(app),
		newFeaturesCoverageCmd(app),
	)
	return cmd
}

func newFeaturesImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON feature list and re-derive the development phase",
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

			file, err := importer.Load(args[0])
			if err != nil {
				return err
			}
			for _, w := range importer.Validate(file, s.resolver) {
				fmt.Println(formatter.StyleYellow.Render("warning: ") + w)
			}

			s.engine.SetFeatures(file.ToDomain(), file.Coverage)
			if err := s.save(ctx); err != nil {
				return err
			}

			dev, _ := s.engine.Phase(domain.DevelopmentPhaseID)
			fmt.Printf("Imported %d features (coverage %.1f); development now %.1f man-days\n",
				len(file.Features), file.Coverage, dev.ManDays)
			return nil
		},
	}
}

func newFeaturesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the project's features",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(context.Background())
			if err != nil {
				return err
			}
			if err := s.requireProject(); err != nil {
				return err
			}

			headers := []string{"ID", "MDs", "Supplier"}
			var rows [][]string
			for _, f := range s.engine.Features() {
				rows = append(rows, []string{
					f.ID,
					fmt.Sprintf("%.2f", f.ManDays),
					s.resolver.DisplayName(domain.CollectionSuppliers, f.Supplier),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newFeaturesCoverageCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "coverage <man-days>",
		Short: "Set the coverage man-days added to the development phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coverage, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid coverage %q: %w", args[0], err)
			}

			ctx := context.Background()
			s, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			if err := s.requireProject(); err != nil {
				return err
			}

			s.engine.SetFeatures(s.engine.Features(), coverage)
			if err := s.save(ctx); err != nil {
				return err
			}

			dev, _ := s.engine.Phase(domain.DevelopmentPhaseID)
			fmt.Printf("Coverage set to %.1f; development now %.1f man-days\n", coverage, dev.ManDays)
			return nil
		},
	}
}
