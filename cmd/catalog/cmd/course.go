package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"catalog-backend/internal/catalog"
	"catalog-backend/internal/components/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const maxSuggestions = 5

func init() {
	rootCmd.AddCommand(courseCmd)
}

var courseCmd = &cobra.Command{
	Use:   "course <code>",
	Short: "Print a stored course along with the assessment weightings in its description.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lookup, closeDB := openLookup(mustLoadConfig())
		defer closeDB()

		course, err := lookup.CourseWithWeightings(cmd.Context(), args[0])
		if errors.Is(err, catalog.ErrNotFound) {
			suggestions, suggestErr := lookup.Suggest(cmd.Context(), args[0], maxSuggestions)
			if suggestErr == nil && len(suggestions) > 0 {
				fmt.Fprintf(os.Stderr, "did you mean: %s\n", strings.Join(suggestions, ", "))
			}
			closeDB()
			serviceutil.Fatal(fmt.Sprintf("course %s", args[0]), err)
		}
		if err != nil {
			closeDB()
			serviceutil.Fatal("failed to get course", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRows([]table.Row{
			{"Code", course.Code},
			{"Subject", course.Subject},
			{"Title", course.Title},
			{"Credits", fmt.Sprintf("%.2f", course.Credits)},
			{"Url", course.Url},
		})
		t.SetStyle(table.StyleRounded)
		t.Render()

		if course.Description != "" {
			fmt.Println(course.Description)
		}
		printComponents(course.Weightings)
	},
}
