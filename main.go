package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"reelnest/config"
	"reelnest/handlers"
	"reelnest/internal/database"
	"reelnest/services/catalog"
	"reelnest/services/history"
	"reelnest/services/search"
	"reelnest/services/tmdb"
	"reelnest/services/users"
	"reelnest/services/watchlist"
	"reelnest/utils"
)

func main() {
	dataDir := os.Getenv("REELNEST_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	cfgManager := config.NewManager(dataDir)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("[main] failed to load settings: %v", err)
	}

	if settings.Logging.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   settings.Logging.File,
			MaxSize:    settings.Logging.MaxSizeMB,
			MaxBackups: settings.Logging.MaxBackups,
		}
		log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	}

	db, err := database.NewDB(database.Config{DatabasePath: settings.Database.Path})
	if err != nil {
		log.Fatalf("[main] failed to open database: %v", err)
	}
	defer db.Close()

	tmdbClient := tmdb.NewClient(settings.TMDB.BaseURL, settings.TMDB.AccessToken)
	catalogSvc := catalog.NewService(tmdbClient, settings.TMDB.Language, nil)
	historySvc := history.NewService(db.History)
	watchlistSvc := watchlist.NewService(db.Watchlist)
	usersSvc := users.NewService(db.Users, nil)
	searchSvc := search.NewService(tmdbClient, historySvc, settings.TMDB.Language)

	router := utils.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	handlers.NewMovieHandler(catalogSvc, tmdbClient, settings.TMDB.DefaultPages).Register(api.PathPrefix("/movie").Subrouter())
	handlers.NewTVHandler(catalogSvc, tmdbClient, settings.TMDB.DefaultPages).Register(api.PathPrefix("/tv").Subrouter())
	handlers.NewPersonHandler(tmdbClient).Register(api.PathPrefix("/person").Subrouter())
	handlers.NewSearchHandler(searchSvc, historySvc).Register(api.PathPrefix("/search").Subrouter())
	handlers.NewWatchlistHandler(watchlistSvc).Register(api.PathPrefix("/watchlist").Subrouter())
	handlers.NewProfileHandler(usersSvc).Register(api.PathPrefix("/profile").Subrouter())

	server := &http.Server{
		Addr:              settings.Server.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", settings.Server.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}
