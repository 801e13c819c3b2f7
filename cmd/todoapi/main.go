package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoapp/internal/config"
	"todoapp/internal/logger"
	"todoapp/internal/mongo"
	"todoapp/internal/mysql"
	"todoapp/internal/routing"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load() // load env var from .env

	log := logger.Load(cfg.LogLevel)

	db := mysql.LoadDB(cfg.MySQLDSN)
	defer db.Close()

	mongoClient, mongoDB := mongo.LoadDB(cfg.MongoURI, cfg.MongoDBName)
	defer mongoClient.Disconnect(context.Background())

	r := mux.NewRouter()
	routing.InitRoutes(r, cfg, db, mongoDB, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("the server is running", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
