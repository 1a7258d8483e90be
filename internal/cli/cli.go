package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cannon/pkg/buildinfo"
	"github.com/matzehuels/cannon/pkg/cache"
	"github.com/matzehuels/cannon/pkg/config"
	"github.com/matzehuels/cannon/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "cannon"

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

	// Config is loaded before any subcommand runs.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Cannon plans TNT cannon barrages that carve pixel art into terrain",
		Long: `Cannon turns a 528x528 silhouette into an ordered list of shots for a
two-axis TNT cannon. Every shot clears a 7x7 square; the planner tries 56
tilings of the silhouette, keeps the most accurate one and writes its firing
sequence as JSON and as loadable Minecraft give commands.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cannon/config.toml)")

	// Register all subcommands
	root.AddCommand(c.planCommand())
	root.AddCommand(c.candidatesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ns := c.Config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), ns)
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
		if err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "addr", c.Config.Cache.RedisAddr, "error", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/cannon/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineFlags are the flags shared by plan and candidates. Unset flags
// fall back to the config file.
type pipelineFlags struct {
	background string
	workers    int
	formats    string
	scale      int
	caption    bool
	noCache    bool
	refresh    bool
}

func (f *pipelineFlags) register(cmd *cobra.Command, render bool) {
	cmd.Flags().StringVarP(&f.background, "background", "b", pipeline.DefaultBackground, "background color of the image")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "concurrent candidate evaluations (0 = all CPUs)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	if !render {
		return
	}
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): json, mcfunction, png (comma-separated)")
	cmd.Flags().IntVar(&f.scale, "scale", pipeline.DefaultScale, "pixels per cell in png output")
	cmd.Flags().BoolVar(&f.caption, "caption", false, "add a metrics caption to png output")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-evaluate every candidate even when a plan is cached")
}

// options merges explicitly set flags over the config file values.
func (c *CLI) options(cmd *cobra.Command, f *pipelineFlags) (pipeline.Options, error) {
	opts := c.Config.PipelineOptions()
	changed := cmd.Flags().Changed
	if changed("background") {
		opts.Background = f.background
	}
	if changed("workers") {
		opts.Workers = f.workers
	}
	if changed("format") {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("caption") {
		opts.Caption = f.caption
	}
	opts.Refresh = f.refresh
	opts.Logger = c.Logger
	return opts, opts.ValidateAndSetDefaults()
}
