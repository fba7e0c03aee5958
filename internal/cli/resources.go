package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	ferrors "github.com/matzehuels/fascia/pkg/errors"
	"github.com/matzehuels/fascia/pkg/resource"
)

func (c *CLI) resourcesCommand() *cobra.Command {
	var source, dir string

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List the background images available for binding",
		Long: `Resources lists the slice images of the configured source in binding
order: the order the build pairs them with components, after the
configured pairing is applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.conf()
			rc := cfg.Resources
			rc.Source = pick(source, rc.Source)
			rc.Dir = pick(dir, rc.Dir)

			src, err := rc.NewSource()
			if err != nil {
				return err
			}
			pairing, err := cfg.Pairing()
			if err != nil {
				return err
			}

			spin := newSpinner(cmd.Context(), "Listing "+fmt.Sprint(src))
			spin.Start()
			list, err := src.List(cmd.Context())
			if err != nil {
				spin.StopWithError("Listing %v failed: %s", src, ferrors.UserMessage(err))
				return err
			}
			spin.Stop()

			if len(list) == 0 {
				printWarning("No images found in %v", src)
				return nil
			}
			ids := make([]string, len(list))
			byID := make(map[string]string, len(list))
			for i, r := range list {
				ids[i] = r.ID
				byID[r.ID] = r.Name
			}
			rows := make([][]string, len(list))
			for i, id := range pairing.Order(ids) {
				rows[i] = []string{strconv.Itoa(i), id, byID[id]}
			}
			printTable([]string{"Component", "ID", "File"}, rows, 0)
			printDetail("%d images from %v, pairing %s", len(list), src, pairing.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "resource source: dir, bucket or none")
	cmd.Flags().StringVar(&dir, "resources", "", "resource directory for the dir source")

	cmd.AddCommand(c.resourcesPagesCommand())
	return cmd
}

// resourcesPagesCommand prints the image names the extraction step
// produces for a document with the given page count.
func (c *CLI) resourcesPagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pages <count>",
		Short: "Print the slice image names expected for a document with <count> pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("invalid page count %q", args[0])
			}
			for _, p := range resource.OddPages(n) {
				fmt.Fprintln(out, resource.PageName(p))
			}
			return nil
		},
	}
}
