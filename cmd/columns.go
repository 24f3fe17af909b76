package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/columns"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/dataset"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/parser"
)

var columnsCmd = &cobra.Command{
	Use:   "columns <file.html>",
	Short: "List extracted columns and the fields resolved from them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		records, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}
		ds := dataset.FromRecords(records)
		if ds.Empty() {
			fmt.Println("No responses found.")
			return nil
		}
		fmt.Printf("%d responses, %d columns\n", ds.Len(), ds.Width())
		for _, name := range ds.Columns() {
			col, _ := ds.Column(name)
			fmt.Printf("- %s (%d answers)\n", name, col.NonNull())
		}

		m := c.Markers.WithDefaults()
		f := columns.ResolveAll(ds.Columns(), m)
		fmt.Println()
		fmt.Println("Resolved fields:")
		for _, row := range []struct{ field, marker, column string }{
			{"age", m.Age, f.Age},
			{"start", m.Start, f.Start},
			{"end", m.End, f.End},
			{"gender", m.Gender, f.Gender},
			{"organization", m.Organization, f.Organization},
			{"status", m.Status, f.Status},
		} {
			col := row.column
			if col == "" {
				col = "(not found)"
			}
			fmt.Printf("  %-12s %q -> %s\n", row.field, row.marker, col)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
