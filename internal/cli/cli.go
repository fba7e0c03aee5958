package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fascia/pkg/buildinfo"
	"github.com/matzehuels/fascia/pkg/cache"
	"github.com/matzehuels/fascia/pkg/config"
	"github.com/matzehuels/fascia/pkg/pipeline"
)

// appName names the cache directory and the redis key scope.
const appName = "fascia"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with every subcommand registered.
// The configuration is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "fascia builds layered scaffold documents from anatomical point tables",
		Long: `fascia converts a table of fascia anchor points and a table of wires
between them into a scaffold document for the 3-D viewer: anchors and wires
grouped into one component per depth layer, each paired with its background
slice image. Further passes collapse minor layers into a Default component
and rescale coordinates for display.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath+" if present)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.filterCommand())
	root.AddCommand(c.scaleCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.resourcesCommand())
	root.AddCommand(c.schemaCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	registerHooks(c.Logger)
	return root
}

// conf returns the loaded configuration, falling back to defaults for
// commands run without the root pre-run hook.
func (c *CLI) conf() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	cc := c.conf().Cache
	switch cc.Backend {
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cc.RedisURL)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "error", err)
			return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
		}
		return pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, appName+":"), c.Logger), nil
	case config.CacheFile:
		fc, err := c.fileCache()
		if err != nil {
			c.Logger.Debug("file cache unavailable", "error", err)
			return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
		}
		return pipeline.NewRunner(fc, nil, c.Logger), nil
	}
	return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
}

func (c *CLI) fileCache() (*cache.FileCache, error) {
	dir := c.conf().Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return nil, err
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the XDG cache directory (~/.cache/fascia/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".cache", appName), nil
}

// firstArg returns args[0], or def when no argument was given.
func firstArg(args []string, def string) string {
	if len(args) > 0 {
		return args[0]
	}
	return def
}
