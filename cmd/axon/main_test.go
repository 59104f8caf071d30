package main

import (
	"bytes"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/axon/internal/config"
	"github.com/vango-dev/axon/internal/demo"
	"github.com/vango-dev/axon/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := execute(t, "render", "counter")
	if err != nil {
		t.Fatal(err)
	}
	if want := "<div><button>-</button><span>0</span><button>+</button></div>"; strings.TrimSpace(out) != want {
		t.Errorf("render counter = %q, want %q", out, want)
	}
}

func TestRenderUnknownDemo(t *testing.T) {
	_, err := execute(t, "render", "chat")
	var ae *errors.AxonError
	if !stderrors.As(err, &ae) || ae.Code != "E141" {
		t.Fatalf("expected E141, got %v", err)
	}
	if !strings.Contains(ae.Suggestion, "todo") {
		t.Errorf("suggestion should list demos, got %q", ae.Suggestion)
	}
}

func TestDemosCommand(t *testing.T) {
	out, err := execute(t, "demos")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Fields(out); strings.Join(got, ",") != strings.Join(demo.Names(), ",") {
		t.Errorf("demos = %v", got)
	}
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q", out)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "axon.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 4000\n  host: 0.0.0.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvPort, "5000")

	cfg, err := loadConfig(serveOptions{configPath: path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Address() != "0.0.0.0:5000" {
		t.Errorf("env should override file, got %s", cfg.Address())
	}

	cfg, err = loadConfig(serveOptions{configPath: path, port: 6000, host: "127.0.0.1"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Address() != "127.0.0.1:6000" {
		t.Errorf("flags should override env, got %s", cfg.Address())
	}
}

func TestNewServerServesMetrics(t *testing.T) {
	// Metrics register with the default registry; swap it for the test.
	reg := prometheus.NewRegistry()
	prevReg, prevGatherer := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer, prometheus.DefaultGatherer = reg, reg
	defer func() {
		prometheus.DefaultRegisterer, prometheus.DefaultGatherer = prevReg, prevGatherer
	}()

	cfg := config.New()
	cfg.Metrics.Enabled = true
	cfg.Tracing.Enabled = true

	app, err := lookupDemo("todo")
	if err != nil {
		t.Fatal(err)
	}
	srv := newServer(cfg, app, cfg.Logger(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/metrics status = %d", resp.StatusCode)
	}
}
