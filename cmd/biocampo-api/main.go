package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agrovivo/biocampo-api/internal/auth"
	"github.com/agrovivo/biocampo-api/internal/config"
	"github.com/agrovivo/biocampo-api/internal/db"
	"github.com/agrovivo/biocampo-api/internal/excel"
	httphandler "github.com/agrovivo/biocampo-api/internal/http"
	"github.com/agrovivo/biocampo-api/internal/http/middleware"
	"github.com/agrovivo/biocampo-api/internal/logger"
	"github.com/agrovivo/biocampo-api/internal/nlu"
	"github.com/agrovivo/biocampo-api/internal/notify"
	"github.com/agrovivo/biocampo-api/internal/pdf"
	"github.com/agrovivo/biocampo-api/internal/repository"
	"github.com/agrovivo/biocampo-api/internal/service"
	"github.com/agrovivo/biocampo-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	catalogRepo := repository.NewCatalogRepository(database)
	scheduleRepo := repository.NewScheduleRepository(database)
	identityRepo := repository.NewIdentityRepository(database)
	quoteRepo := repository.NewQuoteRepository(database)
	orderRepo := repository.NewOrderRepository(database)

	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	excelGenerator := excel.NewGenerator()

	objectStore, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init object store")
	}

	nluClient := nlu.NewClient(cfg.NLU.BaseURL)
	bot := notify.NewBot(cfg.Notify.BotURL, cfg.Notify.ChatID)

	identity := service.NewIdentityResolver(identityRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	scheduleService := service.NewScheduleService(scheduleRepo, identity, excelGenerator, log)
	voiceService := service.NewVoiceService(nluClient, catalogRepo, log)
	quoteService := service.NewQuoteService(quoteRepo, catalogRepo, identity, pdfGenerator, objectStore, bot, cfg.Quotes.IVAPercent, log)
	orderService := service.NewOrderService(orderRepo, catalogRepo, identity, bot, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(catalogService, scheduleService, voiceService, quoteService, orderService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.CORSOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting biocampo api")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
