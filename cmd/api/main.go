package main

import (
	"fmt"

	"khata/internal/config"
	"khata/internal/database"
	"khata/internal/logger"
	"khata/internal/server"
	"khata/internal/services"
	"khata/internal/validator"
)

// @title           Khata API
// @version         1.0
// @description     Khata is a multi-tenant bookkeeping ledger: contacts, bank accounts, and payments that settle sales, purchases, expenses and incomes.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	appConfig, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()

	if err := run(appConfig); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(appConfig *config.Config) error {
	log := logger.Get()

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if appConfig.AutoMigrate {
		if err := dbManager.RunMigrations(appConfig.MigrationsDir); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	validator.Register()

	svc := server.NewServices(dbManager.DB(), appConfig, services.NewVoucherObserver())
	router := server.NewRouter(svc)

	log.Infow("starting khata api",
		"port", appConfig.Port,
		"env", appConfig.Env,
		"allow_overdraft", appConfig.LedgerAllowOverdraft,
		"lock_timeout", appConfig.LedgerLockTimeout.String(),
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
