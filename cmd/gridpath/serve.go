package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/config"
	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/platform/tui"
	"github.com/vovakirdan/gridpath/internal/storage"
)

var (
	flagSSHAddr        string
	flagHostKey        string
	flagIdleTimeout    int
	flagServeBuiltin   string
	flagServeGenerator string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the grid editor over SSH",
	Long: `Start an SSH server that gives every connection its own grid editor.

Each session gets its own copy of the starting layout (an empty grid of the
configured size unless --builtin or --generator is given) and records its
searches in the shared run history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gridpath/host_key

Examples:
  gridpath serve                           # Listen on :23235 with auto-generated key
  gridpath serve --ssh :2222               # Listen on port 2222
  gridpath serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeBuiltin, "builtin", "", "Start every session from this map")
	serveCmd.Flags().StringVar(&flagServeGenerator, "generator", "", "Start every session from this generated layout")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

// sessionFactory returns a factory handing every session its own copy of the
// base layout and its own generator seed.
func sessionFactory(cfg config.Config, base layout, store *storage.Store, baseSeed int64) tui.SessionFactory {
	var sessions atomic.Int64
	return func(user string) (tui.EditorConfig, error) {
		n := sessions.Add(1)
		l := base
		l.Grid = base.Grid.Clone()
		editorCfg, err := editorConfig(cfg, l, store, core.RuntimeConfig{Seed: baseSeed + n})
		if err != nil {
			return tui.EditorConfig{}, err
		}
		editorCfg.Source = "ssh"
		editorCfg.Logger = logger.With("user", user, "session", n)
		return editorCfg, nil
	}
}

func runServe(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: config.ExpandHome(flagHostKey),
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	runSeed := seed()
	base, err := buildLayout(layoutSource{
		MapID:     flagServeBuiltin,
		Generator: flagServeGenerator,
		Width:     appConfig.Grid.Width,
		Height:    appConfig.Grid.Height,
		Density:   appConfig.Generator.Density,
		Seed:      runSeed,
	}, config.ExpandHome(appConfig.Maps.Dir))
	if err != nil {
		fail("%v", err)
	}

	factory := sessionFactory(appConfig, base, store, runSeed)
	server, err := tui.NewSSHServer(cfg, factory, logger.WithPrefix("gridpath-ssh"))
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting gridpath SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
