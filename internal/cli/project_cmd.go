package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pvidovic/estima/internal/cli/formatter"
	"github.com/pvidovic/estima/internal/config"
	"github.com/pvidovic/estima/internal/domain"
	"github.com/pvidovic/estima/internal/repository"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectRemoveCmd(app),
	)
	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project from the current global configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg := config.InitializeProjectConfig(app.Store.Global())

			rec := &repository.ProjectRecord{
				ID:   uuid.New().String(),
				Name: name,
				Document: domain.ProjectDocument{
					Name:   name,
					Config: *cfg,
				},
			}
			if err := app.Projects.Create(context.Background(), rec); err != nil {
				return err
			}

			fmt.Printf("Created project %s\n", name)
			return nil
		},
	}
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}

			headers := []string{"Name", "Features", "Coverage", "Updated"}
			var rows [][]string
			for _, rec := range records {
				rows = append(rows, []string{
					rec.Name,
					fmt.Sprintf("%d", len(rec.Document.Features)),
					fmt.Sprintf("%.1f", rec.Document.Coverage),
					rec.UpdatedAt.Format("2006-01-02 15:04"),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Projects.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", args[0])
			return nil
		},
	}
}
