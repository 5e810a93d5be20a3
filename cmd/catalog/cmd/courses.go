package cmd

import (
	"fmt"
	"os"

	"catalog-backend/internal/components/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var subjectFilter string

func init() {
	coursesCmd.Flags().StringVarP(&subjectFilter, "subject", "s", "", "Only list courses of this subject.")
	rootCmd.AddCommand(coursesCmd)
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List stored courses ordered by code.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		lookup, closeDB := openLookup(mustLoadConfig())
		defer closeDB()

		courses, err := lookup.Courses(cmd.Context(), subjectFilter)
		if err != nil {
			closeDB()
			serviceutil.Fatal("failed to list courses", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Code", "Title", "Credits"})
		for _, c := range courses {
			t.AppendRow(table.Row{c.Code, c.Title, fmt.Sprintf("%.2f", c.Credits)})
		}
		t.AppendFooter(table.Row{"Total", len(courses), ""})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
