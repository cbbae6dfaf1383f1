// Package export writes the shopping list out of the app, either as a
// spreadsheet or as a plain checklist.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"mealplan/internal/plan"
)

// Checker reports whether a shopping item is checked off.
type Checker interface {
	ItemChecked(id string) bool
}

const sheet = "Shopping"

// ShoppingXLSX writes one row per shopping item to an XLSX workbook at path.
func ShoppingXLSX(p *plan.Plan, c Checker, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}
	header := []interface{}{"Category", "Item", "For Meals", "Checked"}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	row := 2
	for _, cat := range p.Shopping {
		for _, it := range cat.Items {
			cell, _ := excelize.CoordinatesToCellName(1, row) // A2, A3, ...
			if err := sw.SetRow(cell, []interface{}{cat.Name, it.Name, it.ForMeals, yesNo(c.ItemChecked(it.ID))}); err != nil {
				return err
			}
			row++
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// ShoppingText writes the list as a markdown-style checklist.
func ShoppingText(w io.Writer, p *plan.Plan, c Checker) error {
	for i, cat := range p.Shopping {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "## %s\n", cat.Name); err != nil {
			return err
		}
		for _, it := range cat.Items {
			box := "[ ]"
			if c.ItemChecked(it.ID) {
				box = "[x]"
			}
			line := fmt.Sprintf("- %s %s", box, it.Name)
			if it.ForMeals != "" {
				line += " (" + it.ForMeals + ")"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
