package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chapterhq/portal-server/chatboard"
	"github.com/chapterhq/portal-server/docstore"
	"github.com/chapterhq/portal-server/forms"
	"github.com/chapterhq/portal-server/internal/config"
	"github.com/chapterhq/portal-server/internal/db"
	"github.com/chapterhq/portal-server/server"
	"github.com/chapterhq/portal-server/treasury"
	"github.com/chapterhq/portal-server/uploads"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	portalServer, err := buildServer(c)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: portalServer}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func buildServer(c config.Config) (*server.Server, error) {
	database, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("db.Open: %w", err)
	}
	if err := db.Migrate(database.DB); err != nil {
		return nil, fmt.Errorf("db.Migrate: %w", err)
	}

	var docs docstore.Store = docstore.NewSQL(database)
	if addr := c.GetRedisAddr(); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		docs = docstore.NewCached(docs, rdb, c.GetDocCacheTTL())
		log.Info().Str("addr", addr).Msg("document cache enabled")
	}

	uploadStorage, err := uploads.New(c)
	if err != nil {
		return nil, fmt.Errorf("uploads.New: %w", err)
	}
	if uploadStorage == nil {
		log.Info().Msg("uploads disabled (no S3_ENDPOINT configured)")
	}

	rules, err := treasury.LoadRules(c.GetTreasuryRulesPath())
	if err != nil {
		// Ingestion still works, rows just land uncategorized
		log.Warn().Err(err).Msg("treasury rules unavailable")
	}

	repos := server.Repos{
		Docs:     docs,
		Forms:    forms.NewSQLRepo(database),
		Chat:     chatboard.NewSQLRepo(database),
		Treasury: treasury.NewSQLRepo(database),
	}
	return server.New(c, repos,
		server.WithUploadStorage(uploadStorage),
		server.WithTreasuryRules(rules),
	)
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("Server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
