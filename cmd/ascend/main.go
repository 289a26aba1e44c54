// DX-Ascend Core - visualization runtime server
//
// This is the main entry point for the DX-Ascend runtime. It serves the
// project store (screens, widgets, bindings, Modbus datapoints and the
// system object tree) over HTTP and composes the runtime documents that
// display clients render.
//
// Optional integrations:
//   - MQTT: tree change events and service status
//   - InfluxDB: history of the values each runtime composition resolves
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/dxascend/ascend-core/migrations"

	"github.com/dxascend/ascend-core/internal/api"
	"github.com/dxascend/ascend-core/internal/infrastructure/config"
	"github.com/dxascend/ascend-core/internal/infrastructure/database"
	"github.com/dxascend/ascend-core/internal/infrastructure/influxdb"
	"github.com/dxascend/ascend-core/internal/infrastructure/logging"
	"github.com/dxascend/ascend-core/internal/infrastructure/mqtt"
	"github.com/dxascend/ascend-core/internal/objecttree"
	"github.com/dxascend/ascend-core/internal/project"
	"github.com/dxascend/ascend-core/internal/view"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// It returns nil once ctx is cancelled and shutdown completes.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting DX-Ascend Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	projects := project.NewSQLiteRepository(db.DB)
	objectRepo := objecttree.NewSQLiteRepository(db.DB)

	objects := objecttree.NewService(objectRepo, projects)
	objects.SetLogger(log)

	composer := view.NewComposer(projects, objectRepo)
	composer.SetLogger(log)
	resolver := view.NewRouteResolver(projects, objectRepo)

	deps := api.Deps{
		Config:   cfg.API,
		Logger:   log,
		DB:       db,
		Projects: projects,
		Objects:  objects,
		Composer: composer,
		Resolver: resolver,
		Version:  version,
	}

	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		objects.SetEventPublisher(&mqttEventAdapter{client: mqttClient})
		deps.MQTT = mqttClient
	} else {
		log.Info("MQTT disabled")
	}

	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		composer.SetRecorder(&influxRecorder{client: influxClient})
		deps.InfluxDB = influxClient
	} else {
		log.Info("InfluxDB disabled")
	}

	server, err := api.New(deps)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error stopping API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("DX-Ascend Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Checks DXASCEND_CONFIG environment variable first, then uses default.
func getConfigPath() string {
	if path := os.Getenv("DXASCEND_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// mqttEventAdapter publishes object tree events to their MQTT topic.
type mqttEventAdapter struct {
	client eventPublisher
}

// eventPublisher is the subset of *mqtt.Client the adapter needs.
type eventPublisher interface {
	PublishJSON(topic string, v any) error
}

// PublishEvent implements objecttree.EventPublisher.
func (a *mqttEventAdapter) PublishEvent(_ context.Context, ev objecttree.Event) error {
	return a.client.PublishJSON(mqtt.Topics{}.CoreEvent(ev.Type), ev)
}

// influxRecorder stores composed runtime values as InfluxDB points.
type influxRecorder struct {
	client bindingWriter
}

// bindingWriter is the subset of *influxdb.Client the recorder needs.
type bindingWriter interface {
	WriteBindingValues(values []influxdb.BindingValue) error
}

// RecordValues implements view.ValueRecorder.
func (r *influxRecorder) RecordValues(_ context.Context, samples []view.Sample) error {
	values := make([]influxdb.BindingValue, 0, len(samples))
	for _, s := range samples {
		values = append(values, influxdb.BindingValue{
			ScreenID:  s.ScreenID,
			WidgetID:  s.WidgetID,
			BindingID: s.BindingID,
			Source:    s.Source,
			Name:      s.Name,
			Value:     s.Value,
			At:        s.At,
		})
	}
	return r.client.WriteBindingValues(values)
}
