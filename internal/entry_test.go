package internal

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewApplicationRequiresConfig(t *testing.T) {
	if _, err := newApplication(nil); err != errConfigRequired {
		t.Fatalf("err = %v", err)
	}
	app, err := newApplication([]Option{WithConfig(validConfig()), WithConfigFile("c.yaml")})
	if err != nil || app.configFile != "c.yaml" {
		t.Fatalf("app = %+v, err = %v", app, err)
	}
}

func TestOpenStoreSQLite(t *testing.T) {
	cfg := StoreConfig{Driver: DriverSQLite, SQLite: SQLiteConfig{Path: filepath.Join(t.TempDir(), "j.db")}}
	store, err := openStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer store.Close()
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	if _, err := openStore(context.Background(), StoreConfig{Driver: "csv"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestWriteStatus(t *testing.T) {
	w := httptest.NewRecorder()
	writeStatus(w, http.StatusServiceUnavailable, "unavailable")
	if w.Code != http.StatusServiceUnavailable || strings.TrimSpace(w.Body.String()) != `{"status":"unavailable"}` {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
}

func TestReloadLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "app:\n  log_level: debug\nauth:\n  secret: s\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	level := new(slog.LevelVar)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	reloadLogLevel(path, level, logger)
	if level.Level() != slog.LevelDebug {
		t.Errorf("level = %v", level.Level())
	}
	if !strings.Contains(buf.String(), "log level changed") {
		t.Errorf("log = %s", buf.String())
	}

	// An invalid file keeps the current level.
	if err := os.WriteFile(path, []byte("app: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	reloadLogLevel(path, level, logger)
	if level.Level() != slog.LevelDebug {
		t.Errorf("level after bad reload = %v", level.Level())
	}
}
