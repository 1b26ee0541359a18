package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kitucode/banking-service/internal/config"
	"github.com/kitucode/banking-service/internal/handler"
	"github.com/kitucode/banking-service/internal/middleware"
	"github.com/kitucode/banking-service/internal/repository"
	"github.com/kitucode/banking-service/internal/service"
	"github.com/kitucode/banking-service/internal/utils/email"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load .env when present, then configuration
	if err := godotenv.Load(); err == nil {
		logger.Info(".env file loaded")
	}
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)

	var notifier service.Notifier
	if sender := email.NewSender(cfg, logger); sender != nil {
		notifier = sender
		logger.Infof("Back-office notifications enabled for %s", cfg.OpsEmail)
	}

	customerService := service.NewCustomerService(repo, logger)
	accountService := service.NewAccountService(repo, repo, cfg, logger, notifier)
	cardService := service.NewCardService(repo, cfg, logger, notifier)
	h := handler.NewHandler(customerService, accountService, cardService, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogging(logger))
	h.SetRoutes(r)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()
	logger.Infof("Starting server on %s", addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("Server gracefully stopped")
}
