package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artopia/artopia-go/auth"
	"github.com/artopia/artopia-go/gallery"
	"github.com/artopia/artopia-go/internal/config"
	"github.com/artopia/artopia-go/internal/logger"
	"github.com/artopia/artopia-go/internal/server"
	"github.com/artopia/artopia-go/store"
	"github.com/artopia/artopia-go/store/memory"
	"github.com/artopia/artopia-go/store/mongo"
	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func initStore(mongoURI, database string) (store.Store, error) {
	if mongoURI == "" {
		return memory.New(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoStore, err := mongo.New(ctx, mongoURI, database)
	if err != nil {
		return nil, err
	}

	if err := mongoStore.Init(ctx); err != nil {
		return nil, err
	}

	return store.NewStatefulStore(mongoStore, cache.New(30*time.Minute, 1*time.Hour)), nil
}

func initVerifier(projectID string, log *zap.SugaredLogger) (auth.Verifier, error) {
	if projectID == "" {
		log.Warn("no firebase project configured, identity-gated endpoints are disabled")
		return auth.Deny(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return auth.NewFirebase(ctx, projectID)
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	return "config.json"
}

func main() {
	config.LoadDotEnv()

	cfg, err := config.FromFile(configPath())
	if err != nil {
		fmt.Println("config not found: ", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Sentry)
	if err != nil {
		fmt.Println("failed to initialise logger: ", err)
		os.Exit(1)
	}
	defer logger.Flush(10 * time.Second)

	st, err := initStore(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("failed to initialise a database: %v", err)
	}

	verifier, err := initVerifier(cfg.Firebase.ProjectID, log)
	if err != nil {
		log.Fatalf("failed to initialise token verification: %v", err)
	}

	srv := server.New(gallery.New(st, log), verifier, log, cfg.Server.Origins)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Infof("Artopia server is running on port %s", cfg.Server.Port)
		return srv.Listen(":" + cfg.Server.Port)
	})
	eg.Go(func() error {
		<-ctx.Done()
		return srv.Shutdown()
	})

	if err := eg.Wait(); err != nil {
		log.Errorf("server stopped: %v", err)
	}

	if err := st.Close(context.Background()); err != nil {
		log.Errorf("failed to close the store: %v", err)
	}
}
