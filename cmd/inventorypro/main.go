package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/inventorypro/internal/api"
	"github.com/erazemk/inventorypro/internal/config"
	"github.com/erazemk/inventorypro/internal/kv"
	"github.com/erazemk/inventorypro/internal/logger"
	"github.com/erazemk/inventorypro/internal/scheduler"
	"github.com/erazemk/inventorypro/internal/store"
)

const usage = `Usage: inventorypro <command> [flags]

Commands:
  serve       run the HTTP server
  report-now  write the low-stock report to the report directory and exit
  register    create an account on the server
  login       sign in and remember the session
  logout      revoke the token and forget the session
  whoami      show the signed-in user
  export      download a CSV export
  report      fetch a report

Run "inventorypro <command> -h" for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	commands := map[string]func([]string) error{
		"serve":      cmdServe,
		"report-now": cmdReportNow,
		"register":   cmdRegister,
		"login":      cmdLogin,
		"logout":     cmdLogout,
		"whoami":     cmdWhoami,
		"export":     cmdExport,
		"report":     cmdReport,
	}

	name := os.Args[1]
	if name == "-h" || name == "-help" || name == "help" {
		fmt.Fprint(os.Stdout, usage)
		return
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", name, usage)
		os.Exit(1)
	}

	if err := cmd(os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses args and rejects positional arguments.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	return nil
}

// serverFlags are shared by the commands that open storage directly.
type serverFlags struct {
	envFile string
	addr    string
	storage string
	dbPath  string
	logPath string
}

func (f *serverFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.envFile, "env", "", "")
	fs.StringVar(&f.envFile, "e", "", "")
	fs.StringVar(&f.addr, "addr", "", "")
	fs.StringVar(&f.addr, "a", "", "")
	fs.StringVar(&f.storage, "storage", "", "")
	fs.StringVar(&f.storage, "s", "", "")
	fs.StringVar(&f.dbPath, "db", "", "")
	fs.StringVar(&f.dbPath, "d", "", "")
	fs.StringVar(&f.logPath, "log", "", "")
	fs.StringVar(&f.logPath, "l", "", "")
}

// load reads the configuration and applies flag overrides.
func (f *serverFlags) load() (*config.Config, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return nil, err
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.storage != "" {
		cfg.Storage.Driver = f.storage
	}
	if f.dbPath != "" {
		cfg.Storage.Path = f.dbPath
	}
	if f.logPath != "" {
		cfg.Server.LogPath = f.logPath
	}
	return cfg, cfg.Validate()
}

const serverFlagsUsage = `  -e, -env <path>         .env file to load (default: .env if present)
  -a, -addr <host:port>   listen address (default: :8080)
  -s, -storage <driver>   storage driver: memory, sqlite, redis, mongo (default: sqlite)
  -d, -db <path>          SQLite database path (default: inventorypro.sqlite3)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit
`

// openStores connects to the configured backend and loads every collection.
func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*store.Stores, kv.Store, string, error) {
	backend, err := kv.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, "", fmt.Errorf("opening storage: %w", err)
	}
	log.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	stores, err := store.Open(ctx, backend)
	if err != nil {
		backend.Close()
		return nil, nil, "", fmt.Errorf("loading stores: %w", err)
	}

	// Load JWT secret from storage (auto-generated on first run).
	secret, err := store.GetJWTSecret(ctx, backend)
	if err != nil {
		backend.Close()
		return nil, nil, "", fmt.Errorf("getting JWT secret: %w", err)
	}
	return stores, backend, secret, nil
}

func cmdServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var flags serverFlags
	flags.register(fs)
	fs.Usage = func() {
		fmt.Fprint(os.Stdout, "Usage: inventorypro serve [flags]\n\nFlags:\n"+serverFlagsUsage)
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg, err := flags.load()
	if err != nil {
		return err
	}

	// INFO/WARN go to stdout, ERROR to stderr, everything to the optional file.
	log, closeLog, err := logger.New(cfg.Server.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()
	zap.ReplaceGlobals(log)

	ctx := context.Background()
	stores, backend, secret, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open stores", zap.Error(err))
		return err
	}
	defer backend.Close()

	if cfg.Reporting.CronSchedule != "" {
		sched, err := scheduler.NewScheduler(cfg.Reporting, stores.Inventory, logger.Named(log, "scheduler"))
		if err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	}

	handler := api.NewRouter(stores, api.Config{
		JWTSecret:  secret,
		LoginDelay: cfg.Server.LoginDelay,
		Logger:     log,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		log.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", cfg.Server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", zap.Error(err))
		return err
	}

	log.Info("server stopped, closing storage")
	return nil
}

func cmdReportNow(args []string) error {
	fs := flag.NewFlagSet("report-now", flag.ContinueOnError)
	var flags serverFlags
	flags.register(fs)
	var dir string
	fs.StringVar(&dir, "dir", "", "")
	fs.StringVar(&dir, "o", "", "")
	fs.Usage = func() {
		fmt.Fprint(os.Stdout, "Usage: inventorypro report-now [flags]\n\nFlags:\n"+
			"  -o, -dir <path>         report directory (default: reports)\n"+serverFlagsUsage)
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg, err := flags.load()
	if err != nil {
		return err
	}
	if dir != "" {
		cfg.Reporting.Dir = dir
	}

	log, closeLog, err := logger.New(cfg.Server.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	stores, backend, _, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close()

	sched, err := scheduler.NewScheduler(cfg.Reporting, stores.Inventory, logger.Named(log, "scheduler"))
	if err != nil {
		return err
	}
	path, rows, err := sched.WriteLowStockReport(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d low-stock rows to %s\n", rows, path)
	return nil
}
