package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/mattn/go-isatty"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/chamber-stats/auth"
	"github.com/danielhkuo/chamber-stats/cliparse"
	"github.com/danielhkuo/chamber-stats/db"
	"github.com/danielhkuo/chamber-stats/middleware"
	"github.com/danielhkuo/chamber-stats/profile"
	"github.com/danielhkuo/chamber-stats/router"
	"github.com/danielhkuo/chamber-stats/stats"
	"github.com/danielhkuo/chamber-stats/store"
	"github.com/danielhkuo/chamber-stats/summary"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	// Load chamber profile
	p := profile.Default()
	if cfg.ProfilePath != "" {
		p, err = profile.Load(cfg.ProfilePath)
		if err != nil {
			slog.Error("profile load failed", "path", cfg.ProfilePath, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Chamber profile ready", "name", p.Name, "seats", p.Options().ChamberSize)
	analyzer := stats.New(p.Options())

	// Open initiative source
	source, closeSource, err := openSource(cfg)
	if err != nil {
		slog.Error("source setup failed", "error", err)
		os.Exit(1)
	}
	defer closeSource()

	// One-shot summary
	if cfg.Summary {
		initiatives, err := source.Initiatives(context.Background())
		if err != nil {
			slog.Error("failed to load initiatives", "error", err)
			os.Exit(1)
		}
		if err := summary.Write(os.Stdout, p.Name, analyzer.Dashboard(initiatives)); err != nil {
			slog.Error("failed to write summary", "error", err)
			os.Exit(1)
		}
		return
	}

	if cfg.AdminKey != "" {
		slog.Info("Imports require admin key", "fingerprint", auth.Fingerprint(cfg.AdminKey))
	} else {
		slog.Warn("No admin key configured, imports are open")
	}

	if cfg.RateLimit > 0 {
		slog.Info("POST endpoints rate limited", "per_client_rps", cfg.RateLimit)
	}

	// Create router
	mux := router.NewRouter(source, analyzer, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.Harden(middleware.CORS(mux)),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// setupLogger writes text logs to a terminal and JSON everywhere else
func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// openSource prefers the database when both a database and a data file
// are configured
func openSource(cfg cliparse.Config) (store.Source, func(), error) {
	if cfg.DatabaseURL == "" {
		if cfg.DataFile == "" {
			return nil, nil, store.ErrNoSource
		}
		slog.Info("Serving initiatives from file", "path", cfg.DataFile)
		return store.NewFileStore(cfg.DataFile), func() {}, nil
	}

	dbConn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DatabaseType == cliparse.DatabaseSQLite {
		// sqlite allows one writer; :memory: needs a single connection
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		dbConn.Close()
		return nil, nil, err
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		dbConn.Close()
		return nil, nil, err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	sqlStore := store.NewSQLStore(dbConn)

	// Seed an empty database from the data file
	if cfg.DataFile != "" {
		if err := seedFromFile(sqlStore, cfg.DataFile); err != nil {
			dbConn.Close()
			return nil, nil, err
		}
	}

	return sqlStore, func() { dbConn.Close() }, nil
}

func seedFromFile(s *store.SQLStore, path string) error {
	ctx := context.Background()

	existing, err := s.Initiatives(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		slog.Debug("Database already populated, skipping seed", "count", len(existing))
		return nil
	}

	initiatives, err := store.LoadFile(path)
	if err != nil {
		return err
	}
	if err := s.Save(ctx, initiatives); err != nil {
		return err
	}
	slog.Info("Seeded database from file", "path", path, "count", len(initiatives))
	return nil
}
