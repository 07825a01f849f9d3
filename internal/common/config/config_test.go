package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	// Пустое значение равнозначно отсутствию переменной.
	t.Setenv("PORT", "")
	t.Setenv("AUTOSAVE_MS", "")
	t.Setenv("EDITOR_URL", "")

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.AutosaveMs != 1500 {
		t.Errorf("AutosaveMs = %d, want 1500", cfg.AutosaveMs)
	}
	if cfg.EditorURL != "http://localhost:3001" {
		t.Errorf("EditorURL = %q", cfg.EditorURL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("AUTOSAVE_MS", "250")
	t.Setenv("EDITOR_DB_PATH", "/tmp/x.db")

	cfg := Load()
	if cfg.Port != "8080" || cfg.AutosaveMs != 250 || cfg.DBPath != "/tmp/x.db" {
		t.Errorf("Load = %+v, want env overrides applied", cfg)
	}
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("AUTOSAVE_MS", "soon")
	if cfg := Load(); cfg.AutosaveMs != 1500 {
		t.Errorf("AutosaveMs = %d, want default on parse failure", cfg.AutosaveMs)
	}
}
