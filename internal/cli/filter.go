package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fascia/pkg/pipeline"
	"github.com/matzehuels/fascia/pkg/scaffold"
)

func (c *CLI) filterCommand() *cobra.Command {
	var (
		output string
		keep   int
	)

	cmd := &cobra.Command{
		Use:   "filter [scaffold.json]",
		Short: "Collapse all but the first components of a scaffold into Default",
		Long: `Filter keeps the first --keep components of a full scaffold unchanged and
moves every other anchor and wire, including those in no component, into a
single Default component with sorted members.

The input defaults to the configured full scaffold and must exist.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.conf()
			opts := pipeline.FilterOptions{
				Input:  firstArg(args, cfg.Output.Scaffold),
				Output: pick(output, cfg.Output.Filtered),
				Keep:   cfg.Grouping.Keep,
			}
			if cmd.Flags().Changed("keep") {
				opts.Keep = keep
			}

			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			doc, err := runner.Filter(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printSuccess("Filtered scaffold written")
			printFile(opts.Output)
			printKeyValue("Kept Components", fmt.Sprint(keptCount(doc)))
			printKeyValue("Total Components", fmt.Sprint(len(doc.Components)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "filtered scaffold output")
	cmd.Flags().IntVar(&keep, "keep", 3, "components kept verbatim")
	return cmd
}

// keptCount returns the number of components other than Default.
func keptCount(doc *scaffold.Document) int {
	n := len(doc.Components)
	if _, ok := doc.Component(scaffold.DefaultComponentID); ok {
		n--
	}
	return n
}
