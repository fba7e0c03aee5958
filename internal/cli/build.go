package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fascia/pkg/config"
	"github.com/matzehuels/fascia/pkg/pipeline"
	"github.com/matzehuels/fascia/pkg/resource"
	"github.com/matzehuels/fascia/pkg/scaffold"
)

type buildFlags struct {
	nodes     string
	edges     string
	output    string
	filtered  string
	source    string
	dir       string
	pairing   string
	keep      int
	precision int
	summary   bool
	noCache   bool
	refresh   bool
}

func (c *CLI) buildCommand() *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the full and filtered scaffold from the anchor and wire tables",
		Long: `Build groups anchors by their z coordinate into one component per layer,
keeps wires whose endpoints share a layer, binds slice images as component
backgrounds and writes two documents: the full scaffold and a filtered one
that keeps the first components and collapses the rest into Default.

A missing table is reported as a warning and treated as empty.`,
		Example: `  fascia build
  fascia build --keep 4 --precision 3
  fascia build --source bucket --summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.buildOptions(cmd, f)
			if err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), opts, f)
		},
	}

	def := config.Default()
	cmd.Flags().StringVar(&f.nodes, "nodes", "", "anchor table (default "+def.Input.Nodes+")")
	cmd.Flags().StringVar(&f.edges, "edges", "", "wire table (default "+def.Input.Edges+")")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "full scaffold output (default "+def.Output.Scaffold+")")
	cmd.Flags().StringVar(&f.filtered, "filtered", "", "filtered scaffold output (default "+def.Output.Filtered+")")
	cmd.Flags().StringVar(&f.source, "source", "", "resource source: dir, bucket or none")
	cmd.Flags().StringVar(&f.dir, "resources", "", "resource directory for the dir source (default "+def.Resources.Dir+")")
	cmd.Flags().StringVar(&f.pairing, "pairing", "", "resource pairing: reversed or in-order")
	cmd.Flags().IntVar(&f.keep, "keep", def.Grouping.Keep, "components kept verbatim in the filtered scaffold")
	cmd.Flags().IntVar(&f.precision, "precision", def.Grouping.Precision, "round z to this many decimals before grouping (negative: exact)")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "print a table of the built components")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	return cmd
}

// buildOptions merges flags over the configuration. Flags only override
// when set explicitly.
func (c *CLI) buildOptions(cmd *cobra.Command, f buildFlags) (pipeline.Options, error) {
	cfg := c.conf()
	rc := cfg.Resources
	set := cmd.Flags().Changed

	opts := pipeline.Options{
		NodesPath:    pick(f.nodes, cfg.Input.Nodes),
		EdgesPath:    pick(f.edges, cfg.Input.Edges),
		FullPath:     pick(f.output, cfg.Output.Scaffold),
		FilteredPath: pick(f.filtered, cfg.Output.Filtered),
		Keep:         cfg.Grouping.Keep,
		Policy:       cfg.KeyPolicy(),
		Refresh:      f.refresh,
	}
	if set("keep") {
		opts.Keep = f.keep
	}
	if set("precision") {
		opts.Policy = scaffold.KeyPolicy{Precision: f.precision}
	}

	rc.Source = pick(f.source, rc.Source)
	rc.Dir = pick(f.dir, rc.Dir)
	rc.Pairing = pick(f.pairing, rc.Pairing)
	var err error
	if opts.Pairing, err = scaffold.ParsePairing(rc.Pairing); err != nil {
		return opts, err
	}
	if opts.Resources, err = rc.NewSource(); err != nil {
		return opts, err
	}
	return opts, nil
}

func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options, f buildFlags) error {
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *spinner
	if _, remote := opts.Resources.(*resource.BucketSource); remote {
		spin = newSpinner(ctx, "Listing "+fmt.Sprint(opts.Resources))
		spin.Start()
	}
	res, err := runner.Build(ctx, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		printWarning("Warning: %s", w)
	}
	printSuccess("Successfully created %s", opts.FullPath)
	printFile(opts.FullPath)
	printFile(opts.FilteredPath)
	printKeyValue("Anchors", fmt.Sprint(res.Stats.Anchors))
	printKeyValue("Wires", fmt.Sprint(res.Stats.Wires))
	printKeyValue("Original Components", fmt.Sprint(res.Stats.Components))
	printKeyValue("Filtered Components", fmt.Sprint(len(res.Filtered.Components)))
	printStats(res.CacheHit,
		fmt.Sprintf("%d backgrounds bound", res.Stats.Bound),
		fmt.Sprintf("%d resources", res.Stats.Resources),
		"run "+res.RunID[:8])

	if f.summary {
		printComponents(res.Full)
	}
	printNextStep("Rescale for the viewer", "fascia scale viewer --input "+opts.FilteredPath)
	return nil
}

// printComponents prints one table row per component.
func printComponents(doc *scaffold.Document) {
	rows := make([][]string, 0, len(doc.Components))
	for _, comp := range doc.Components {
		bg := comp.Background
		if bg == "" {
			bg = "-"
		}
		rows = append(rows, []string{comp.ID, fmt.Sprint(len(comp.Anchors)), fmt.Sprint(len(comp.Wires)), bg})
	}
	printTable([]string{"Component", "Anchors", "Wires", "Background"}, rows, 1, 2)
}

// pick returns v unless it is empty.
func pick(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
