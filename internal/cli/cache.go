package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fascia/pkg/config"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the scaffold cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached scaffolds",
		RunE: func(cmd *cobra.Command, args []string) error {
			if backend := c.conf().Cache.Backend; backend != config.CacheFile {
				printInfo("Nothing to clear for the %s cache backend", backend)
				return nil
			}
			fc, err := c.fileCache()
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			n, err := fc.Clear()
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.conf().Cache.Dir
			if dir == "" {
				var err error
				if dir, err = cacheDir(); err != nil {
					return err
				}
			}
			fmt.Fprintln(out, dir)
			return nil
		},
	}
}
