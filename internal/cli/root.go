package cli

import (
	"github.com/pvidovic/estima/internal/config"
	"github.com/pvidovic/estima/internal/domain"
	"github.com/pvidovic/estima/internal/repository"
	"github.com/spf13/cobra"
)

// App holds the wired services CLI commands run against.
type App struct {
	Store       *config.Store
	Config      *repository.SQLiteConfigRepo
	Projects    *repository.SQLiteProjectRepo
	Definitions []domain.PhaseDefinition

	// ProjectName selects the project context, bound to --project.
	ProjectName string

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "estima" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "estima",
		Short:         "Software-project cost and effort estimation",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVarP(&app.ProjectName, "project", "p", app.ProjectName,
		"Project context (defaults to ESTIMA_PROJECT)")

	root.AddCommand(
		newProjectCmd(app),
		newEntityCmd(app, domain.CollectionSuppliers, "supplier", "Manage suppliers"),
		newEntityCmd(app, domain.CollectionInternalResources, "resource", "Manage internal resources"),
		newCategoryCmd(app),
		newParamsCmd(app),
		newPhasesCmd(app),
		newFeaturesCmd(app),
		newTotalsCmd(app),
		newStatsCmd(app),
		newExportCmd(app),
	)

	return root
}
