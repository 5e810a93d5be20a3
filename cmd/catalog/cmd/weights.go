package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"catalog-backend/internal/components/serviceutil"
	"catalog-backend/internal/weights"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	weightsStdin bool
	weightsJson  bool
)

func init() {
	weightsCmd.Flags().BoolVar(&weightsStdin, "stdin", false, "Read the description from stdin.")
	weightsCmd.Flags().BoolVar(&weightsJson, "json", false, "Print the components as json.")
	rootCmd.AddCommand(weightsCmd)
}

var weightsCmd = &cobra.Command{
	Use:   "weights [description]",
	Short: "Extract the assessment weightings from a course description.",
	Run: func(cmd *cobra.Command, args []string) {
		description := strings.Join(args, " ")
		if weightsStdin {
			text, err := io.ReadAll(os.Stdin)
			if err != nil {
				serviceutil.Fatal("failed to read stdin", err)
			}
			description = string(text)
		}

		components := weights.Extract(description)
		if weightsJson {
			out, err := json.MarshalIndent(components, "", "  ")
			if err != nil {
				serviceutil.Fatal("failed to marshal components", err)
			}
			fmt.Println(string(out))
			return
		}
		printComponents(components)
	},
}

func printComponents(components []weights.Component) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Component", "Weight"})
	total := 0
	for _, c := range components {
		t.AppendRow(table.Row{c.Name, fmt.Sprintf("%d%%", c.Weight)})
		total += c.Weight
	}
	t.AppendFooter(table.Row{"Total", fmt.Sprintf("%d%%", total)})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
