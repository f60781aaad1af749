package main

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	v1 "salesmart/api/v1"
	"salesmart/database"
	exportapp "salesmart/internal/export/application"
	reportapp "salesmart/internal/report/application"
	salesinfra "salesmart/internal/sales/infrastructure"
	sharedinfra "salesmart/internal/shared/infrastructure"
)

func main() {
	// Charge .env
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("logger init:", err)
	}
	defer logger.Sync()

	// Connexion PostgreSQL
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "salesmart"),
		getEnv("DB_PASSWORD", "salesmart"),
		getEnv("DB_NAME", "salesmart"),
		getEnv("DB_SSLMODE", "disable"),
	)

	if err := database.Init(connStr); err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer database.Close()

	// Câblage des services: repository -> rapports -> exports -> handlers
	salesRepo := salesinfra.NewSalesQueryRepository(database.DB)
	cache := sharedinfra.NewShardedCache(16)
	reportService := reportapp.NewReportService(salesRepo, cache, logger, nil)
	exportService := exportapp.NewExportService(reportService, logger)
	defer exportService.Cleanup()

	handlers := v1.NewHandlers(reportService, exportService, logger)

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux)
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	addr := ":" + getEnv("HTTP_PORT", "8080")
	logger.Info("server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
