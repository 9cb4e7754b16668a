package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pvidovic/estima/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newParamsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Manage calculation parameters",
	}
	cmd.AddCommand(newParamsListCmd(app), newParamsSetCmd(app))
	return cmd
}

func newParamsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resolved calculation parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatParams(s.resolver.Resolve().CalculationParams))
			return nil
		},
	}
}

func newParamsSetCmd(app *App) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a calculation parameter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			scope, err := s.scope(global)
			if err != nil {
				return err
			}

			// Numeric values stay numeric; anything else is a string.
			var value any = args[1]
			if n, err := strconv.ParseFloat(args[1], 64); err == nil {
				value = n
			}

			if err := s.resolver.SetParam(args[0], value, scope); err != nil {
				return err
			}
			if err := s.save(ctx); err != nil {
				return err
			}

			fmt.Printf("Set %s = %v (%s)\n", args[0], value, scope)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Write into the global configuration")
	return cmd
}
