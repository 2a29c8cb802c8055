package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kBool
	kFloat
	kDuration
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "HIREKIT_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.api_token", typ: kString, env: "HIREKIT_SERVER_API_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Server.APIToken = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.APIToken },
	},
	{
		key: "server.max_profile_bytes", typ: kInt, env: "HIREKIT_SERVER_MAX_PROFILE_BYTES",
		apply:   func(cfg *Config, v any) { cfg.Server.MaxProfileBytes = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.MaxProfileBytes },
	},
	{
		key: "log.level", typ: kString, env: "HIREKIT_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	{
		key: "llm.backend", typ: kString, env: "HIREKIT_LLM_BACKEND",
		apply:   func(cfg *Config, v any) { cfg.LLM.Backend = v.(string) },
		extract: func(cfg Config) any { return cfg.LLM.Backend },
	},
	{
		key: "llm.model", typ: kString, env: "HIREKIT_LLM_MODEL",
		apply:   func(cfg *Config, v any) { cfg.LLM.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.LLM.Model },
	},
	{
		key: "llm.reasoning_model", typ: kString, env: "HIREKIT_LLM_REASONING_MODEL",
		apply:   func(cfg *Config, v any) { cfg.LLM.ReasoningModel = v.(string) },
		extract: func(cfg Config) any { return cfg.LLM.ReasoningModel },
	},
	{
		key: "llm.openrouter_api_key", typ: kString, env: "HIREKIT_OPENROUTER_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.LLM.OpenRouterAPIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.LLM.OpenRouterAPIKey },
	},
	{
		key: "llm.openrouter_url", typ: kString, env: "HIREKIT_OPENROUTER_URL",
		apply:   func(cfg *Config, v any) { cfg.LLM.OpenRouterURL = v.(string) },
		extract: func(cfg Config) any { return cfg.LLM.OpenRouterURL },
	},
	{
		key: "ollama.base_url", typ: kString, env: "HIREKIT_OLLAMA_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Ollama.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Ollama.BaseURL },
	},
	{
		key: "ollama.model", typ: kString, env: "HIREKIT_OLLAMA_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Ollama.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.Ollama.Model },
	},
	{
		key: "provider.adzuna_app_id", typ: kString, env: "HIREKIT_ADZUNA_APP_ID",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Provider.AdzunaAppID = v.(string) },
		extract: func(cfg Config) any { return cfg.Provider.AdzunaAppID },
	},
	{
		key: "provider.adzuna_app_key", typ: kString, env: "HIREKIT_ADZUNA_APP_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Provider.AdzunaAppKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Provider.AdzunaAppKey },
	},
	{
		key: "provider.adzuna_base_url", typ: kString, env: "HIREKIT_ADZUNA_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Provider.AdzunaBaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Provider.AdzunaBaseURL },
	},
	{
		key: "provider.requests_per_second", typ: kFloat, env: "HIREKIT_PROVIDER_REQUESTS_PER_SECOND",
		apply:   func(cfg *Config, v any) { cfg.Provider.RequestsPerSecond = v.(float64) },
		extract: func(cfg Config) any { return cfg.Provider.RequestsPerSecond },
	},
	{
		key: "provider.results_per_page", typ: kInt, env: "HIREKIT_PROVIDER_RESULTS_PER_PAGE",
		apply:   func(cfg *Config, v any) { cfg.Provider.ResultsPerPage = v.(int) },
		extract: func(cfg Config) any { return cfg.Provider.ResultsPerPage },
	},
	{
		key: "search.allow_synthetic", typ: kBool, env: "HIREKIT_SEARCH_ALLOW_SYNTHETIC",
		apply:   func(cfg *Config, v any) { cfg.Search.AllowSynthetic = v.(bool) },
		extract: func(cfg Config) any { return cfg.Search.AllowSynthetic },
	},
	{
		key: "search.cache_ttl", typ: kDuration, env: "HIREKIT_SEARCH_CACHE_TTL",
		apply:   func(cfg *Config, v any) { cfg.Search.CacheTTL = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Search.CacheTTL },
	},
	{
		key: "cache.redis_url", typ: kString, env: "HIREKIT_CACHE_REDIS_URL",
		apply:   func(cfg *Config, v any) { cfg.Cache.RedisURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Cache.RedisURL },
	},
	{
		key: "stream.token_delay", typ: kDuration, env: "HIREKIT_STREAM_TOKEN_DELAY",
		apply:   func(cfg *Config, v any) { cfg.Stream.TokenDelay = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Stream.TokenDelay },
	},
	{
		key: "stream.profile_budget", typ: kInt, env: "HIREKIT_STREAM_PROFILE_BUDGET",
		apply:   func(cfg *Config, v any) { cfg.Stream.ProfileBudget = v.(int) },
		extract: func(cfg Config) any { return cfg.Stream.ProfileBudget },
	},
	{
		key: "stream.history_turns", typ: kInt, env: "HIREKIT_STREAM_HISTORY_TURNS",
		apply:   func(cfg *Config, v any) { cfg.Stream.HistoryTurns = v.(int) },
		extract: func(cfg Config) any { return cfg.Stream.HistoryTurns },
	},
	{
		key: "storage.data_dir", typ: kString, env: "HIREKIT_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
}

func lookupSpec(key string) (keySpec, bool) {
	for _, s := range specs {
		if s.key == key {
			return s, true
		}
	}
	return keySpec{}, false
}

// parseValue converts raw to the Go type of t.
func parseValue(t keyType, raw string) (any, error) {
	switch t {
	case kInt:
		return strconv.Atoi(raw)
	case kBool:
		return strconv.ParseBool(raw)
	case kFloat:
		return strconv.ParseFloat(raw, 64)
	case kDuration:
		return time.ParseDuration(raw)
	default:
		return raw, nil
	}
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		if s.typ == kInt {
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
			continue
		}

		raw, ok, err := b.GetString(s.key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", s.key, err)
		}
		if !ok || (raw == "" && s.typ != kString) {
			continue
		}
		v, err := parseValue(s.typ, raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] could not parse config key %s=%q: %v. Using default value.\n", s.key, raw, err)
			continue
		}
		s.apply(cfg, v)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		v, err := parseValue(s.typ, raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] could not parse env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			continue
		}
		s.apply(cfg, v)
	}
}

// applySecrets fills secret keys that are still empty from the secrets store.
func applySecrets(cfg *Config, secrets secretReader) {
	if secrets == nil {
		return
	}
	for _, s := range specs {
		if !s.secret || s.extract(*cfg) != "" {
			continue
		}
		if v, err := secrets.Get(s.key); err == nil && v != "" {
			s.apply(cfg, v)
		}
	}
}
