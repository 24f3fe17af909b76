package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/runs"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/utils"
)

var (
	showJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		all, err := runs.List(c.RunsDir)
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println("(no runs)")
			return nil
		}
		for _, r := range all {
			fmt.Printf("- %s  %s  %s (%d rows, %d columns)\n", r.ID[:min(8, len(r.ID))], r.CreatedAt.Format("2006-01-02 15:04"), r.Source, r.Rows, r.Columns)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a saved run (an ID prefix is enough)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		r, err := runs.Load(c.RunsDir, args[0])
		if err != nil {
			return err
		}
		if showJSON {
			b, err := utils.PrettyJSON(r)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		fmt.Printf("Run: %s\n", r.ID)
		fmt.Printf("Source: %s\n", r.Source)
		fmt.Printf("Created: %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Rows: %d, Columns: %d\n", r.Rows, r.Columns)
		fmt.Println("\nBasic statistics:")
		for _, m := range r.Basic.Metrics {
			fmt.Printf("  %s: %s\n", m.Name, m.String())
		}
		fmt.Println("\nAdvanced statistics:")
		for _, m := range r.Advanced.Metrics {
			fmt.Printf("  %s: %s\n", m.Name, m.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the stored run as JSON")
}
