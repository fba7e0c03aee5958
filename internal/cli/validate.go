package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	ferrors "github.com/matzehuels/fascia/pkg/errors"
	fio "github.com/matzehuels/fascia/pkg/io"
	"github.com/matzehuels/fascia/pkg/scaffold"
)

func (c *CLI) validateCommand() *cobra.Command {
	var (
		strict    bool
		precision int
	)

	cmd := &cobra.Command{
		Use:   "validate [scaffold.json]",
		Short: "Report referential problems in a scaffold",
		Long: `Validate lists duplicate ids, wires whose endpoints name no anchor, wires
crossing layers, component members missing from the flat lists and
backgrounds that are not external resources. The build tolerates all of
these; --strict turns any finding into a non-zero exit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstArg(args, c.conf().Output.Scaffold)
			doc, err := fio.ImportJSON(path)
			if err != nil {
				return err
			}
			policy := c.conf().KeyPolicy()
			if cmd.Flags().Changed("precision") {
				policy = scaffold.KeyPolicy{Precision: precision}
			}

			issues := scaffold.Validate(doc, policy)
			if len(issues) == 0 {
				printSuccess("No issues in %s", path)
				return nil
			}

			rows := make([][]string, len(issues))
			for i, is := range issues {
				rows[i] = []string{string(is.Kind), is.ID, is.Msg}
			}
			printTable([]string{"Kind", "ID", "Detail"}, rows)
			if strict {
				printError("%d issues in %s", len(issues), path)
				return ferrors.New(ferrors.ErrCodeInvalidInput, "%s: %s", path, plural(len(issues), "issue"))
			}
			printWarning("%d issues in %s", len(issues), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when issues are found")
	cmd.Flags().IntVar(&precision, "precision", -1, "layer key precision used for the cross-layer check")
	return cmd
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
