package db

import (
	"path/filepath"
	"testing"
)

func TestSettingsRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	database, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer database.Close()

	got, err := database.GetSetting(KeyLastView)
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if got != "" {
		t.Errorf("unset key: got %q, want empty", got)
	}

	if err := database.SetSetting(KeyLastView, "Active"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := database.SetSetting(KeyLastView, "Completed"); err != nil {
		t.Fatalf("SetSetting overwrite: %v", err)
	}
	if got, _ := database.GetSetting(KeyLastView); got != "Completed" {
		t.Errorf("GetSetting: got %q, want Completed", got)
	}

	if err := database.DeleteSetting(KeyLastView); err != nil {
		t.Fatalf("DeleteSetting: %v", err)
	}
	if got, _ := database.GetSetting(KeyLastView); got != "" {
		t.Errorf("after delete: got %q, want empty", got)
	}
}

func TestSettingsSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	first, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := first.SetSetting(KeyLastView, "Active"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	first.Close()

	second, err := New(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if got, _ := second.GetSetting(KeyLastView); got != "Active" {
		t.Errorf("got %q, want Active", got)
	}
}
