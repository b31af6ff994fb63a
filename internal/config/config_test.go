package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points config discovery at empty directories
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{
		"TASKHUB_DATA_DIR", "TASKHUB_EXPORT_DIR", "TASKHUB_EXPORT_FORMAT", "TASKHUB_SEED",
		"TASKHUB_DEMO", "TASKHUB_REMEMBER_VIEW", "TASKHUB_TOAST_SECONDS",
		"TASKHUB_LOG_LEVEL", "TASKHUB_LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("test", flag.ContinueOnError)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(dir, "data", "taskhub"); cfg.DataDir != want {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, want)
	}
	if cfg.ExportFormat != DefaultExportFormat {
		t.Errorf("ExportFormat: got %q, want %q", cfg.ExportFormat, DefaultExportFormat)
	}
	if cfg.ToastSeconds != DefaultToastSeconds {
		t.Errorf("ToastSeconds: got %d, want %d", cfg.ToastSeconds, DefaultToastSeconds)
	}
	if !cfg.RememberView {
		t.Error("RememberView: got false, want true")
	}
	if cfg.Demo {
		t.Error("Demo: got true, want false")
	}
}

func TestLayering(t *testing.T) {
	dir := isolate(t)

	writeFile(t, filepath.Join(dir, "config", "taskhub", "taskhub.toml"), `
export_format = "csv"
log_level = "debug"
toast_seconds = 5
`)
	writeFile(t, filepath.Join(dir, "taskhub.toml"), `
export_format = "pdf"
demo = true
`)
	t.Setenv("TASKHUB_LOG_LEVEL", "warn")
	t.Setenv("TASKHUB_TOAST_SECONDS", "3")

	cfg, err := Load(newFlagSet(), []string{"--toast-seconds", "1"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"export_format from project file", cfg.ExportFormat, "pdf"},
		{"demo from project file", cfg.Demo, true},
		{"log_level from env", cfg.LogLevel, "warn"},
		{"toast_seconds from flag", cfg.ToastSeconds, 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestExplicitConfigSkipsDiscovery(t *testing.T) {
	dir := isolate(t)

	writeFile(t, filepath.Join(dir, "taskhub.toml"), `export_format = "pdf"`)
	explicit := filepath.Join(dir, "custom.toml")
	writeFile(t, explicit, `seed_file = "tasks.json"`)

	cfg, err := Load(newFlagSet(), []string{"--config=" + explicit})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ExportFormat != DefaultExportFormat {
		t.Errorf("ExportFormat: got %q, project file should be skipped", cfg.ExportFormat)
	}
	if cfg.SeedFile != "tasks.json" {
		t.Errorf("SeedFile: got %q, want tasks.json", cfg.SeedFile)
	}
	if cfg.ConfigFile != explicit {
		t.Errorf("ConfigFile: got %q, want %q", cfg.ConfigFile, explicit)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{name: "bad export format", args: []string{"--export-format", "xml"}, wantErr: "export_format"},
		{name: "bad log format", env: map[string]string{"TASKHUB_LOG_FORMAT": "yaml"}, wantErr: "log_format"},
		{name: "negative toast", args: []string{"--toast-seconds", "-1"}, wantErr: "toast_seconds"},
		{name: "zero toast", file: `toast_seconds = 0`, wantErr: "toast_seconds must be positive"},
		{name: "bad bool env", env: map[string]string{"TASKHUB_DEMO": "maybe"}, wantErr: "TASKHUB_DEMO"},
		{name: "unknown key", file: `colour = "blue"`, wantErr: "unknown keys"},
		{name: "malformed toml", file: `export_format = `, wantErr: "loading project config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if tt.file != "" {
				writeFile(t, filepath.Join(dir, "taskhub.toml"), tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(newFlagSet(), tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	t.Setenv("TASKHUB_TEST_DIR", "/tmp/x")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/exports", filepath.Join(home, "exports")},
		{"$TASKHUB_TEST_DIR/out", "/tmp/x/out"},
		{"relative/dir", "relative/dir"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
