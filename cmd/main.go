package main

import (
	"context"
	"devicehub/internal/configuration"
	"devicehub/internal/database"
	"devicehub/internal/locker"
	"devicehub/internal/logger"
	"devicehub/internal/server"
	"devicehub/internal/service"
	"encoding/json"
	"flag"
	"github.com/go-redis/redis/v9"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	if err := runApp(); err != nil {
		os.Exit(1)
	}
}

func runApp() error {
	configPath := flag.String("config", "config.toml", "path to the TOML configuration file")
	flag.Parse()

	appContext, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logOutput := io.Writer(os.Stdout)
	errOutput := io.Writer(os.Stderr)
	appLogger := logger.NewLogger(logger.LevelInfo, logOutput, errOutput)

	defer func() {
		if r := recover(); r != nil {
			appLogger.Errorf("APPLICATION CRASHED: %+v", r)
		}
	}()

	config, err := configuration.GetConfig(*configPath)
	if err != nil {
		appLogger.Errorf("Error getting configuration from %s: %v", *configPath, err)
		return err
	}

	if config.LogToFile {
		logFile, err := os.OpenFile("devicehub.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			appLogger.Error("Error opening log file:", err)
			return err
		}
		defer func() {
			if err := logFile.Close(); err != nil {
				appLogger.Error("Error closing log file:", err)
			}
		}()
		logOutput = io.MultiWriter(logOutput, logFile)
		errOutput = io.MultiWriter(errOutput, logFile)
	}
	appLogger = logger.NewLogger(config.LogLevel, logOutput, errOutput)

	if config.LogLevel >= logger.LevelDebug {
		conf, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			appLogger.Error("Error marshalling Config to JSON:", err)
			return err
		}
		appLogger.Debugf("Config:\n%s", conf)
	}

	appLogger.Info("Connecting to DB at", config.DatabaseURI)
	dbConn, err := database.ConnectDB(appContext, config.DatabaseURI, config.DatabaseName)
	if err != nil {
		appLogger.Error("Error connecting to DB:", err)
		return err
	}
	defer func() {
		if err := dbConn.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from DB:", err)
		}
	}()
	db := database.Database{Database: dbConn.Database(config.DatabaseName)}

	var companyLocker service.Locker = locker.Noop{}
	if config.RedisAddress != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddress,
			Password: config.RedisPassword,
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				appLogger.Error("Error closing Redis client:", err)
			}
		}()
		if err = rdb.Ping(appContext).Err(); err != nil {
			appLogger.Error("Error pinging Redis:", err)
			return err
		}
		appLogger.Info("Using Redis locks at", config.RedisAddress)
		companyLocker = locker.NewRedisLocker(rdb, config.LockTTL, appLogger)
	} else {
		appLogger.Info("redis_address not set, company upserts are not locked across instances")
	}

	ownership := service.Ownership{Companies: db, Products: db, Devices: db}
	srv := server.Server{
		Users:         service.NewUserService(db),
		Companies:     service.NewCompanyService(db, companyLocker),
		Products:      service.NewProductService(db, ownership),
		Devices:       service.NewDeviceService(db, ownership),
		Updates:       service.NewUpdateService(db, ownership),
		Logger:        appLogger,
		AuthSecretKey: config.AuthSecretKey,
		TokenTTL:      config.TokenTTL,
	}

	httpSrv := &http.Server{
		Handler:      srv.Router(),
		Addr:         config.ServerAddress,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("Serving on", httpSrv.Addr)
		serveErr <- httpSrv.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		appLogger.Error("HTTP server stopped:", err)
		return err
	case <-appContext.Done():
	}

	appLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = httpSrv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Error shutting down HTTP server:", err)
		return err
	}
	return nil
}
