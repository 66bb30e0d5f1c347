package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rangectl.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `port = "/dev/ttyACM0"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "/dev/ttyACM0" {
		t.Errorf("port=%q", cfg.Port)
	}
	if cfg.Baud != 115200 {
		t.Errorf("baud=%d want default 115200", cfg.Baud)
	}
	if cfg.ResponseTimeout != time.Second {
		t.Errorf("response timeout=%v want default 1s", cfg.ResponseTimeout)
	}
	if cfg.Retries != 4 {
		t.Errorf("retries=%d want default 4", cfg.Retries)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
port = "COM7"
baud = 921600
response_timeout = "250ms"
retries = 2
update_rate = 50
stream_count = 0
log_level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "COM7" || cfg.Baud != 921600 || cfg.Retries != 2 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.ResponseTimeout != 250*time.Millisecond {
		t.Errorf("response timeout=%v", cfg.ResponseTimeout)
	}
	if cfg.UpdateRate != 50 || cfg.StreamCount != 0 || cfg.LogLevel != "debug" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing port", `baud = 115200`, "missing port"},
		{"bad baud", "port = \"COM1\"\nbaud = -1", "baud"},
		{"bad timeout", "port = \"COM1\"\nresponse_timeout = \"soon\"", "response_timeout"},
		{"bad retries", "port = \"COM1\"\nretries = 0", "retries"},
		{"bad update rate", "port = \"COM1\"\nupdate_rate = 80", "update_rate"},
	}

	for _, tc := range cases {
		_, err := Load(writeConfig(t, tc.body))
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error=%v want mention of %q", tc.name, err, tc.want)
		}
	}
}
