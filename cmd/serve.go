package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spacedmonkey/blockpress/internal/hooks"
	"github.com/spacedmonkey/blockpress/internal/patterns"
	"github.com/spacedmonkey/blockpress/internal/registry"
	"github.com/spacedmonkey/blockpress/internal/server"
	"github.com/spacedmonkey/blockpress/internal/styles"
	"github.com/spacedmonkey/blockpress/internal/themejson"
	"github.com/spacedmonkey/blockpress/internal/watcher"
)

// serveCmd runs the development server with file watching.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the development server",
	Long: `Start the development server for the active theme. The server
exposes the discovered patterns and the generated stylesheet over HTTP,
pushes registry changes over WebSocket, and watches the theme's files:
editing a pattern file rescans the patterns directory, and editing
theme.json rebuilds the global stylesheet caches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, t, st, scanner, logger, err := loadEnvironment()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		merge := themejson.NewResolver()
		resolver := styles.NewResolver(t, merge, styles.Options{
			Debug:               cfg.Development.Debug,
			AdminContext:        cfg.Development.AdminContext,
			SeparateBlockAssets: cfg.Development.SeparateBlockAssets,
		}, logger)

		reg := registry.NewPatternRegistry()
		defer reg.Close()
		reg.Replace(scanner.GetPatterns(ctx, t))

		bus := hooks.NewBus()
		defer bus.Close()

		w, err := watcher.New(t, bus, logger, 0)
		if err != nil {
			return err
		}
		defer w.Stop()
		if err := w.Start(ctx); err != nil {
			return err
		}

		events := bus.Subscribe(hooks.PatternsInvalidated, hooks.GlobalStylesUpdated, hooks.ThemeSwitched)
		go func() {
			for event := range events {
				switch event.Kind {
				case hooks.PatternsInvalidated:
					// Drop the stored entry so the rescan is not
					// served from cache.
					if err := st.Delete(patterns.CacheKey(t)); err != nil {
						logger.Error(ctx, err, "invalidating pattern cache")
					}
					reg.Replace(scanner.GetPatterns(ctx, t))
					logger.Info(ctx, "patterns rescanned", "count", reg.Count())
				case hooks.GlobalStylesUpdated, hooks.ThemeSwitched:
					resolver.SwitchTheme(t)
					logger.Info(ctx, "global styles caches rebuilt")
				}
			}
		}()

		srv := server.New(cfg.Server.Host, cfg.Server.Port, cfg.Server.AllowedOrigins, reg, resolver, logger)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "server port (overrides server.port)")
	bindFlags(serveCmd.Flags(), map[string]string{"server.port": "port"})
	rootCmd.AddCommand(serveCmd)
}
