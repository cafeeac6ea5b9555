package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wacc-calculator/src/analysis"
	"wacc-calculator/src/cache"
	"wacc-calculator/src/config"
	"wacc-calculator/src/data_source/yahoo"
	"wacc-calculator/src/interfaces"
	"wacc-calculator/src/logger"
	"wacc-calculator/src/network"
	"wacc-calculator/src/server"
	"wacc-calculator/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config, config.Name)

	// Setup history store
	var db interfaces.IDatabase

	switch config.Storage.DBType {
	case "postgres":
		db, err = storage.NewPostgresDB(config.MConfig, appLogger)
	default:
		// Default to SQLite
		db, err = storage.NewSQLiteDB(config.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := db.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer db.Close()

	// Setup fetch pipeline: network -> source -> TTL cache
	var networkManager interfaces.INetworkManager = network.NewNetworkManager(config.MConfig, appLogger)
	var source interfaces.IMetricsSource = yahoo.NewYahooFinanceSource(config.MConfig, networkManager)
	metricsCache := cache.NewMetricsCache(source, time.Duration(config.Cache.TTLSeconds)*time.Second)

	facade := analysis.NewWaccFacade(appLogger)

	var srv interfaces.IDataExchanger = server.NewWaccServer(config.MConfig, appLogger, metricsCache, facade, db)

	// Start Server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	appLogger.Info("WACC calculator ready (source: %s, cache TTL: %ds)",
		source.Name(), config.Cache.TTLSeconds)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	if err := srv.Stop(); err != nil {
		appLogger.Error("Server stop failed: %v", err)
	}
}
