package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mealplan/internal/export"
)

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print meal completion and shopping progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s)\n\n", a.plan.Title, a.plan.Dates)
			for _, d := range a.plan.Days {
				done, total := a.store.DayProgress(d.Number)
				fmt.Fprintf(w, "Day %d: %d/%d done\n", d.Number, done, total)
				for _, meal := range d.Meals {
					mark := " "
					if a.store.MealDone(meal.ID) {
						mark = "x"
					}
					_, hasImage := a.store.Image(meal.ID)
					suffix := ""
					if hasImage {
						suffix = " (image)"
					}
					fmt.Fprintf(w, "  [%s] %-9s %s%s\n", mark, meal.Type, meal.Name, suffix)
				}
			}

			done, total := a.store.Progress()
			checked, items := a.store.ShoppingProgress()
			fmt.Fprintf(w, "\nMeals: %d/%d done\n", done, total)
			fmt.Fprintf(w, "Shopping: %d/%d checked\n", checked, items)
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the shopping list",
		Long: `Writes the shopping list with its checked state.

Formats:
  xlsx: a workbook with one row per item (requires --out)
  text: a markdown checklist, to --out or stdout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "xlsx" && format != "text" {
				return fmt.Errorf("unknown format %q (want xlsx or text)", format)
			}
			if format == "xlsx" && out == "" {
				return fmt.Errorf("--out is required for xlsx")
			}

			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if format == "xlsx" {
				if err := export.ShoppingXLSX(a.plan, a.store, out); err != nil {
					return err
				}
				a.logger.Info("Shopping list exported", zap.String("format", format), zap.String("path", out))
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
				return nil
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := export.ShoppingText(w, a.plan, a.store); err != nil {
				return err
			}
			a.logger.Info("Shopping list exported", zap.String("format", format), zap.String("path", out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: xlsx or text")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	return cmd
}

func newResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear meal completion and checked shopping items",
		Long:  "Clears every done meal and checked shopping item. Recipe images are kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			a.store.Reset()
			a.logger.Info("Progress reset")
			fmt.Fprintln(cmd.OutOrStdout(), "Progress cleared. Recipe images kept.")
			return nil
		},
	}
}
