package cli

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	fio "github.com/matzehuels/fascia/pkg/io"
	"github.com/matzehuels/fascia/pkg/schema"
)

func (c *CLI) schemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect the viewer's JSON schema",
	}
	cmd.AddCommand(c.schemaCountCommand())
	return cmd
}

func (c *CLI) schemaCountCommand() *cobra.Command {
	var plot string

	cmd := &cobra.Command{
		Use:   "count [schema.json]",
		Short: "Count the properties of every class, including inherited ones",
		Example: `  fascia schema count
  fascia schema count src/model/graphScheme.json --plot property_counts.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstArg(args, schema.DefaultPath)
			report, err := schema.CountFile(path)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(report.Classes)+1)
			for _, cl := range report.Classes {
				rows = append(rows, []string{cl.Name, strconv.Itoa(cl.Properties)})
			}
			rows = append(rows, []string{StyleTitle.Render("TOTAL UNIQUE PROPERTIES"), strconv.Itoa(report.TotalUnique)})
			printTable([]string{"Class Name", "Property Count"}, rows, 1)

			if plot == "" {
				return nil
			}
			var buf bytes.Buffer
			if err := schema.Plot(&buf, report); err != nil {
				return fmt.Errorf("plot: %w", err)
			}
			if err := fio.WriteFileAtomic(plot, buf.Bytes()); err != nil {
				return err
			}
			printSuccess("Saved bar chart")
			printFile(plot)
			return nil
		},
	}
	cmd.Flags().StringVar(&plot, "plot", "", "also save a PNG bar chart of the counts to this file")
	return cmd
}
