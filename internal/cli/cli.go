// Package cli implements the jsonscope command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/internal/config"
	"github.com/matzehuels/jsonscope/pkg/buildinfo"
	"github.com/matzehuels/jsonscope/pkg/cache"
	"github.com/matzehuels/jsonscope/pkg/viewer"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "jsonscope",
		Short: "jsonscope explores large JSON documents",
		Long: `jsonscope renders large, deeply nested JSON documents as a collapsible,
searchable tree or as a node-link graph, in the terminal, as files, or over HTTP.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/jsonscope/config.toml)")

	root.AddCommand(c.treeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.skeletonCommand())
	root.AddCommand(c.prettyCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// setup loads the configuration once per invocation and applies the log
// level. --verbose wins over the configured level.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.verbose {
		c.SetLogLevel(log.DebugLevel)
	} else {
		c.SetLogLevel(cfg.LogLevel())
	}
	c.Logger.Debug("configuration loaded", "path", c.configPath)
	return nil
}

// config returns the loaded configuration, or the defaults when a command
// runs without the root pre-run (tests).
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

func (c *CLI) viewerOptions() viewer.Options {
	return c.config().ViewerOptions(c.Logger)
}

// =============================================================================
// Cache Factory
// =============================================================================

func (c *CLI) newCache(noCache bool) cache.Cache {
	cfg := c.config()
	if noCache || !cfg.Cache.Enabled {
		return cache.NewNullCache()
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	return fc
}
