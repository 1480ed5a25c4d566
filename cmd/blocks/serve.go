package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/httpapi"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagHTTPAddr    string
	flagRedisURL    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and the HTTP leaderboard",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a mode picker; results are
recorded under the SSH user name. All users share one leaderboard: the
local database, plus Redis when --redis is set so that several servers
rank together. With --http the leaderboard is also served as JSON.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.blocks/host_key

Examples:
  blocks serve                                 # SSH on :23234
  blocks serve --ssh :2222 --http :8080        # plus GET /api/v1/scores/{mode}
  blocks serve --redis redis://localhost:6379  # shared rankings

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	addGameFlags(serveCmd)
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP leaderboard address (disabled if empty)")
	serveCmd.Flags().StringVar(&flagRedisURL, "redis", "", "Redis URL for the shared leaderboard (disabled if empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "blocks",
	})

	if err := applyGameSettings(); err != nil {
		return err
	}

	var boards []storage.Leaderboard
	if flagRedisURL != "" {
		rcfg := storage.DefaultRedisConfig()
		rcfg.URL = flagRedisURL
		rb, err := storage.NewRedisLeaderboard(rcfg)
		if err != nil {
			return err
		}
		defer rb.Close()
		boards = append(boards, rb)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		modes, err := rb.Modes(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		logger.Info("using redis leaderboard", "url", flagRedisURL, "ranked_modes", modes)
	}
	if store := openStore(); store != nil {
		defer store.Close()
		boards = append(boards, store)
	}
	board := storage.NewFanout(boards...)

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	sshCfg.TickRate = flagFPS

	sshSrv, err := tui.NewSSHServer(sshCfg, board, logger.WithPrefix("ssh"))
	if err != nil {
		return err
	}

	var httpSrv *httpapi.Server
	if flagHTTPAddr != "" {
		router := httpapi.NewRouter(httpapi.RouterConfig{
			Logger: logger.WithPrefix("http"),
			Board:  board,
			Modes:  tui.RankedModes(),
		})
		httpCfg := httpapi.DefaultServerConfig()
		httpCfg.Address = flagHTTPAddr
		httpSrv = httpapi.NewServer(router, httpCfg, logger.WithPrefix("http"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 2)
	go func() { errs <- sshSrv.ListenAndServe() }()
	if httpSrv != nil {
		go func() { errs <- httpSrv.ListenAndServe() }()
	}

	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(flagSSHAddr))
	fmt.Println("Press Ctrl+C to stop")

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	shutdownErr := sshSrv.Shutdown(shutdownCtx)
	if httpSrv != nil {
		shutdownErr = errors.Join(shutdownErr, httpSrv.Shutdown(shutdownCtx))
	}
	return errors.Join(serveErr, shutdownErr)
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}
