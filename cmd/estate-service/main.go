package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/drelocd/estate-service/internal/auth"
	"github.com/drelocd/estate-service/internal/config"
	"github.com/drelocd/estate-service/internal/db"
	"github.com/drelocd/estate-service/internal/excel"
	httphandler "github.com/drelocd/estate-service/internal/http"
	"github.com/drelocd/estate-service/internal/http/middleware"
	"github.com/drelocd/estate-service/internal/logger"
	"github.com/drelocd/estate-service/internal/pdf"
	"github.com/drelocd/estate-service/internal/repository"
	"github.com/drelocd/estate-service/internal/service"
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

	userRepo := repository.NewUserRepository(database)
	propertyRepo := repository.NewPropertyRepository(database)
	poolRepo := repository.NewTransferPoolRepository(database)
	clientRepo := repository.NewClientRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)
	transferRepo := repository.NewTransferRepository(database)
	lotRepo := repository.NewLotRepository(database)
	agentRepo := repository.NewAgentRepository(database)
	planRepo := repository.NewPlanRepository(database)
	serviceClientRepo := repository.NewServiceClientRepository(database)
	jobRepo := repository.NewServiceJobRepository(database)
	paymentRepo := repository.NewServicePaymentRepository(database)
	dispatchRepo := repository.NewDispatchRepository(database)
	activityRepo := repository.NewActivityRepository(database)

	pdfGenerator := pdf.NewGenerator()
	excelGenerator := excel.NewGenerator()

	accessTTL, err := time.ParseDuration(cfg.Auth.AccessTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid JWT_ACCESS_TTL")
	}
	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, accessTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	userService := service.NewUserService(userRepo, activityRepo, tokenIssuer)
	seeded, err := userService.Bootstrap(context.Background(), cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin user")
	}
	if seeded {
		log.Info().Str("username", cfg.Auth.BootstrapUsername).Msg("seeded bootstrap admin")
	}

	services := httphandler.Services{
		Users:      userService,
		Properties: service.NewPropertyService(propertyRepo, poolRepo, clientRepo, activityRepo, cfg),
		Clients:    service.NewClientService(clientRepo, activityRepo),
		Sales:      service.NewSalesService(transactionRepo, propertyRepo, clientRepo, activityRepo, pdfGenerator),
		Transfers:  service.NewTransferService(transferRepo, userRepo, clientRepo, activityRepo),
		Lots:       service.NewLotService(lotRepo, propertyRepo, activityRepo),
		Agents:     service.NewAgentService(agentRepo, activityRepo),
		Plans:      service.NewPlanService(planRepo, activityRepo),
		Survey:     service.NewSurveyService(serviceClientRepo, jobRepo, paymentRepo, dispatchRepo, activityRepo, pdfGenerator),
		Activity:   service.NewActivityService(activityRepo, cfg),
		Dashboard:  service.NewDashboardService(propertyRepo, clientRepo, transactionRepo, jobRepo),
		Reports:    service.NewReportService(propertyRepo, paymentRepo, excelGenerator),
	}

	handler := httphandler.NewHandler(services, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting estate service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
