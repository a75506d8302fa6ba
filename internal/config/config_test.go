package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ARCGEN_LLM_PROVIDER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.AI.MaxToolRounds != 6 {
		t.Errorf("expected default tool rounds 6, got %d", cfg.AI.MaxToolRounds)
	}
	if !cfg.AI.StreamResponse {
		t.Error("expected streaming enabled by default")
	}
	if cfg.Upload.MaxBytes != 10<<20 {
		t.Errorf("expected 10MB upload cap, got %d", cfg.Upload.MaxBytes)
	}
}

func TestLoadServerAddrForms(t *testing.T) {
	cases := []struct {
		port    string
		want    string
		wantErr bool
	}{
		{port: "9000", want: ":9000"},
		{port: ":9000", want: ":9000"},
		{port: "127.0.0.1:9000", want: "127.0.0.1:9000"},
		{port: "bad port", wantErr: true},
	}

	for _, tc := range cases {
		t.Setenv("PORT", tc.port)
		cfg, err := loadServerConfig()
		if tc.wantErr {
			if err == nil {
				t.Errorf("PORT=%q: expected error", tc.port)
			}
			continue
		}
		if err != nil {
			t.Errorf("PORT=%q: unexpected error: %v", tc.port, err)
			continue
		}
		if cfg.Addr != tc.want {
			t.Errorf("PORT=%q: expected addr %q, got %q", tc.port, tc.want, cfg.Addr)
		}
	}
}

func TestLoadAIConfigOverrides(t *testing.T) {
	t.Setenv("ARCGEN_LLM_PROVIDER", "OpenAI")
	t.Setenv("ARCGEN_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("ARCGEN_TEMPERATURE", "0.4")
	t.Setenv("ARCGEN_MAX_TOKENS", "2048")
	t.Setenv("ARCGEN_MAX_TOOL_ROUNDS", "0")

	ai, err := loadAIConfig()
	if err != nil {
		t.Fatalf("loadAIConfig returned error: %v", err)
	}

	if ai.DefaultProvider != "openai" {
		t.Errorf("expected provider lowercased, got %q", ai.DefaultProvider)
	}
	if ai.DefaultModel != "gpt-4o-mini" {
		t.Errorf("unexpected model %q", ai.DefaultModel)
	}
	if ai.Temperature == nil || *ai.Temperature != 0.4 {
		t.Errorf("unexpected temperature %v", ai.Temperature)
	}
	if ai.MaxTokens == nil || *ai.MaxTokens != 2048 {
		t.Errorf("unexpected max tokens %v", ai.MaxTokens)
	}
	if ai.MaxToolRounds != 1 {
		t.Errorf("expected tool rounds clamped to 1, got %d", ai.MaxToolRounds)
	}
}

func TestLoadAIConfigInvalidValues(t *testing.T) {
	t.Setenv("ARCGEN_TEMPERATURE", "warm")
	if _, err := loadAIConfig(); err == nil {
		t.Error("expected error for invalid ARCGEN_TEMPERATURE")
	}
	t.Setenv("ARCGEN_TEMPERATURE", "")

	t.Setenv("ARCGEN_MAX_UPLOAD_BYTES", "-1")
	if _, err := loadUploadConfig(); err == nil {
		t.Error("expected error for negative ARCGEN_MAX_UPLOAD_BYTES")
	}
}
