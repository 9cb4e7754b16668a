package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pvidovic/estima/internal/cli/formatter"
	"github.com/pvidovic/estima/internal/domain"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage feature categories",
	}
	cmd.AddCommand(
		newCategoryAddCmd(app),
		newCategoryListCmd(app),
		newCategoryAddTypeCmd(app),
		newCategoryRemoveCmd(app),
	)
	return cmd
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var id, name, desc string
	var global bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			ctx := context.Background()
			s, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			scope, err := s.scope(global)
			if err != nil {
				return err
			}

			cat := domain.Category{
				ID:          id,
				Name:        name,
				Description: desc,
				Status:      domain.StatusActive,
			}
			if err := s.resolver.UpsertCategory(cat, scope); err != nil {
				return err
			}
			if err := s.save(ctx); err != nil {
				return err
			}

			fmt.Printf("Added category %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Category id (generated when empty)")
	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&desc, "description", "", "Description")
	cmd.Flags().BoolVar(&global, "global", false, "Write into the global configuration")
	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resolved categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatCategories(s.resolver.Resolve().Categories))
			return nil
		},
	}
}

func newCategoryAddTypeCmd(app *App) *cobra.Command {
	var name string
	var avgMDs float64
	var global bool

	cmd := &cobra.Command{
		Use:   "add-type <category-id>",
		Short: "Add a feature type to a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			ctx := context.Background()
			s, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			scope, err := s.scope(global)
			if err != nil {
				return err
			}

			cat, ok := s.resolver.FindCategory(args[0])
			if !ok {
				return fmt.Errorf("unknown category %q", args[0])
			}
			cat = cat.Clone()
			cat.FeatureTypes = append(cat.FeatureTypes, domain.FeatureType{
				ID:         uuid.New().String(),
				Name:       name,
				AverageMDs: avgMDs,
			})
			if scope == domain.ScopeGlobal {
				cat.IsOverridden = false
			}
			if err := s.resolver.UpsertCategory(cat, scope); err != nil {
				return err
			}
			if err := s.save(ctx); err != nil {
				return err
			}

			fmt.Printf("Added feature type %s to %s\n", name, cat.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Feature type name")
	cmd.Flags().Float64Var(&avgMDs, "avg-mds", 0, "Average man-days")
	cmd.Flags().BoolVar(&global, "global", false, "Write into the global configuration")
	return cmd
}

func newCategoryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a category from this project (global categories are soft-deleted)",
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

			name := s.resolver.DisplayName(domain.CollectionCategories, args[0])
			s.resolver.Delete(domain.CollectionCategories, args[0])
			if err := s.save(ctx); err != nil {
				return err
			}

			fmt.Printf("Removed %s\n", name)
			return nil
		},
	}
}
