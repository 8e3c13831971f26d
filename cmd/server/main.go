package main

import (
	"context"
	"fmt"

	"github.com/viewtube/user-service/internal/config"
	transport "github.com/viewtube/user-service/internal/handler/http"
	"github.com/viewtube/user-service/internal/logger"
	"github.com/viewtube/user-service/internal/media"
	"github.com/viewtube/user-service/internal/server"
	"github.com/viewtube/user-service/internal/service"
	"github.com/viewtube/user-service/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("user-service")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	users := store.NewUserRepository(db, log)

	uploader, err := media.NewUploader(ctx, cfg.Storage.Media, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating media uploader")
	}

	services := service.NewServices(users, uploader, cfg.App, log)

	handler := transport.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
