package influxdb_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/dxascend/ascend-core/internal/infrastructure/config"
	"github.com/dxascend/ascend-core/internal/infrastructure/influxdb"
)

// testConfig returns a configuration for a local development InfluxDB.
func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:8086",
		Token:         "dx-ascend-dev-token",
		Org:           "dxascend",
		Bucket:        "history",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

// skipIfNoInfluxDB skips the test if InfluxDB is not running.
func skipIfNoInfluxDB(t *testing.T) *influxdb.Client {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION") == "" {
		t.Skip("set RUN_INTEGRATION to run against a live InfluxDB")
	}
	client, err := influxdb.Connect(testConfig())
	if err != nil {
		t.Skipf("InfluxDB not available: %v", err)
	}
	t.Cleanup(func() { client.Close() }) //nolint:errcheck // Close is idempotent
	return client
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	client, err := influxdb.Connect(cfg)
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
	if client != nil {
		t.Error("Connect() returned a client when disabled")
	}
}

func TestConnect_InvalidURL(t *testing.T) {
	cfg := testConfig()
	cfg.URL = "http://127.0.0.1:1"

	if _, err := influxdb.Connect(cfg); !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestClose_Nil(t *testing.T) {
	client := &influxdb.Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on zero client error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true on zero client")
	}
	client.Flush()
}

func TestHealthCheck_NotConnected(t *testing.T) {
	client := &influxdb.Client{}
	if err := client.HealthCheck(context.Background()); !errors.Is(err, influxdb.ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestLiveWriteAndClose(t *testing.T) {
	client := skipIfNoInfluxDB(t)

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck() error = %v", err)
	}

	err := client.WriteBindingValues([]influxdb.BindingValue{
		{ScreenID: 1, WidgetID: 1, BindingID: 1, Source: "binding", Name: "test", Value: 1.5, At: time.Now()},
	})
	if err != nil {
		t.Fatalf("WriteBindingValues() error = %v", err)
	}
	client.Flush()

	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := client.WriteBindingValues([]influxdb.BindingValue{{Value: 1.0}}); !errors.Is(err, influxdb.ErrNotConnected) {
		t.Errorf("WriteBindingValues() after Close error = %v, want ErrNotConnected", err)
	}
}
