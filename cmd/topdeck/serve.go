package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/topdeck/internal/game"
	"github.com/vovakirdan/topdeck/internal/game/defense"
	"github.com/vovakirdan/topdeck/internal/platform/tui"
	"github.com/vovakirdan/topdeck/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server for remote play",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game with its own session and director.
Finished waves are stored in the server's database with the source
"ssh:<user>".

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.topdeck/host_key

Examples:
  topdeck serve                           # Listen on :23235 with auto-generated key
  topdeck serve --ssh :2222               # Listen on port 2222
  topdeck serve --host-key ./my_host_key  # Use specific host key
  topdeck serve --difficulty hard         # Every connection plays on hard

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	l := logger("cmd", "serve")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		l.Warn("running without a session database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Logger = l
	cfg.NewGame = func(user string) game.Game {
		gl := l.With("user", user)
		return defense.New(appConfig,
			defense.WithLogger(gl),
			defense.WithWaveHook(recorder(store, appPreset, "ssh:"+user, gl)),
		)
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Starting topdeck SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}
