package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/LightD31/humidex-ha/internal/config"
	"github.com/LightD31/humidex-ha/internal/db"
	"github.com/LightD31/humidex-ha/internal/httpapi"
	"github.com/LightD31/humidex-ha/internal/migrate"
	sensor "github.com/LightD31/humidex-ha/internal/modules/sensor"
	"github.com/LightD31/humidex-ha/internal/mqtt"
)

func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"sqliteDriver", cfg.SQLiteDriver,
		"sqlitePath", cfg.SQLitePath,
		"sqliteMaxOpenConns", cfg.SQLiteMaxOpenConns,
		"sqliteMaxIdleConns", cfg.SQLiteMaxIdleConns,
		"sqliteConnMaxLifetime", cfg.SQLiteConnMaxLifetime,
		"mqttBroker", cfg.MQTTBroker,
		"mqttPort", cfg.MQTTPort,
		"mqttSourceTopic", cfg.MQTTSourceTopic,
		"mqttStatePrefix", cfg.MQTTStatePrefix,
	)

	dbConn, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(dbConn); closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	if err := migrate.Run(dbConn); err != nil {
		return err
	}

	var ok int
	if err := dbConn.QueryRow(`SELECT 1`).Scan(&ok); err != nil {
		return err
	}
	if ok != 1 {
		return errors.New("database connection failed")
	}
	slog.Info("database connection successful")

	// Register the sensor feature before Connect so the message handler
	// is in place when the broker starts delivering queued messages
	// right after CONNACK.
	mqttClient := mqtt.NewClient(cfg, logger)
	mux := httpapi.NewMux(dbConn)
	sensor.RegisterFeature(mux, dbConn, mqttClient, cfg.MQTTStatePrefix, logger)

	// Short timeout for the initial connect so startup does not block
	// when the broker is down; the client keeps retrying in the
	// background either way.
	connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
	err = mqttClient.Connect(connectCtx)
	connectCancel()
	if err != nil {
		slog.Warn("mqtt connection failed (continuing without mqtt)", "error", err)
	}

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("mqtt disconnecting")
	mqttClient.Disconnect()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
