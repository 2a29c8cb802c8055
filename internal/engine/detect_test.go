package engine

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		cfg  DetectConfig
		want string
	}{
		{"explicit ollama", DetectConfig{Backend: "ollama", OpenRouterAPIKey: "sk"}, "ollama"},
		{"explicit openrouter", DetectConfig{Backend: "OpenRouter"}, "openrouter"},
		{"implicit with key", DetectConfig{OpenRouterAPIKey: "sk"}, "openrouter"},
		{"implicit without key", DetectConfig{OllamaBaseURL: "http://localhost:11434"}, "ollama"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Detect(tt.cfg)
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			var got string
			switch e.(type) {
			case *OllamaEngine:
				got = "ollama"
			case *OpenRouterEngine:
				got = "openrouter"
			}
			if got != tt.want {
				t.Errorf("Detect returned %T, want %s", e, tt.want)
			}
		})
	}
}

func TestDetect_UnknownBackend(t *testing.T) {
	if _, err := Detect(DetectConfig{Backend: "mlx"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestDetectConfig_Resolve(t *testing.T) {
	if got := (DetectConfig{Backend: " Ollama "}).Resolve(); got != BackendOllama {
		t.Errorf("Resolve = %q, want %q", got, BackendOllama)
	}
	if got := (DetectConfig{OpenRouterAPIKey: "sk"}).Resolve(); got != BackendOpenRouter {
		t.Errorf("Resolve = %q, want %q", got, BackendOpenRouter)
	}
}
