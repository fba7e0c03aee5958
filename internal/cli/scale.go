package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fascia/pkg/config"
	"github.com/matzehuels/fascia/pkg/pipeline"
)

func (c *CLI) scaleCommand() *cobra.Command {
	var (
		input   string
		output  string
		list    bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "scale [profile]",
		Short: "Rescale anchor coordinates with a named profile",
		Long: `Scale maps the selected axes of every anchor linearly from their observed
range onto the profile's target range, and shifts zero-based axes so their
minimum becomes 0. Components and wires are copied unchanged.

Built-in profiles:
  viewer   x and y onto [-1000, 1000]
  compact  x and y onto [-100, 100], z zero-based

Profiles are defined under [scale.<name>] in the config file. A missing
input document is an error.`,
		Example: `  fascia scale
  fascia scale compact
  fascia scale viewer --input out/fascia_scaffold.json --output out/scaled.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.conf()
			if list {
				printProfiles(cfg)
				return nil
			}

			name := firstArg(args, "viewer")
			profile, err := cfg.Profile(name)
			if err != nil {
				return err
			}
			norm, err := profile.Options()
			if err != nil {
				return err
			}
			opts := pipeline.ScaleOptions{
				Input:     pick(input, profile.Input),
				Output:    pick(output, profile.Output),
				Normalize: norm,
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Scale(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				printWarning("%s", w)
			}
			for _, s := range res.Axes {
				printInfo("Current %s range: [%g, %g]", strings.ToUpper(string(s.Axis)), s.Min, s.Max)
			}
			if !res.Written {
				return nil
			}
			printSuccess("Successfully scaled coordinates to [%g, %g] and saved to %s", norm.Target.Min, norm.Target.Max, opts.Output)
			printStats(res.CacheHit, fmt.Sprintf("profile %s", name), fmt.Sprintf("%d anchors", len(res.Document.Anchors)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "scaffold document to scale (default from profile)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "scaled document output (default from profile)")
	cmd.Flags().BoolVar(&list, "list", false, "list the configured profiles")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func printProfiles(cfg *config.Config) {
	rows := make([][]string, 0, len(cfg.Scale))
	for _, name := range cfg.ProfileNames() {
		p := cfg.Scale[name]
		zero := strings.Join(p.ZeroBase, ",")
		if zero == "" {
			zero = "-"
		}
		rows = append(rows, []string{
			name,
			strings.Join(p.Axes, ","),
			fmt.Sprintf("[%g, %g]", p.Target.Min, p.Target.Max),
			zero,
			p.Input,
			p.Output,
		})
	}
	printTable([]string{"Profile", "Axes", "Target", "Zero-based", "Input", "Output"}, rows)
}
