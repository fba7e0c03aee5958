package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	fio "github.com/matzehuels/fascia/pkg/io"
	"github.com/matzehuels/fascia/pkg/render/dot"
)

const (
	formatSVG = "svg"
	formatDOT = "dot"
)

func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		format string
		opts   dot.Options
	)

	cmd := &cobra.Command{
		Use:   "render [scaffold.json]",
		Short: "Draw a scaffold as a Graphviz diagram",
		Long: `Render draws one cluster per component with its anchors and in-layer wires.
Wires outside every component are dashed; endpoints naming no anchor are
dotted. With --positioned anchors are pinned at their x/y coordinates.`,
		Example: `  fascia render
  fascia render out/fascia_scaffold_filtered.json --format dot
  fascia render scaled.json --positioned --scale 0.5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatSVG && format != formatDOT {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatSVG, formatDOT)
			}
			input := firstArg(args, c.conf().Output.Scaffold)
			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			doc, err := fio.ImportJSON(input)
			if err != nil {
				return err
			}
			data := []byte(dot.FromScaffold(doc, opts))
			if format == formatSVG {
				if data, err = dot.RenderSVG(cmd.Context(), string(data)); err != nil {
					return err
				}
			}
			if err := fio.WriteFileAtomic(output, data); err != nil {
				return err
			}
			prog.done("rendered " + filepath.Base(input))

			printSuccess("Rendered %d components", len(doc.Components))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg or dot")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show coordinates in node labels")
	cmd.Flags().BoolVar(&opts.Positioned, "positioned", false, "pin anchors at their x/y coordinates")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 1, "coordinate multiplier for --positioned")
	return cmd
}
