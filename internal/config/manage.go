package config

import (
	"fmt"
	"strconv"
)

// KeyInfo describes a config key for display purposes.
type KeyInfo struct {
	Key    string
	EnvVar string
	Value  string
	Secret bool
}

// ShowAll returns all config key/value pairs from the current config.
// Secret values are masked.
func ShowAll(cfg Config) []KeyInfo {
	var result []KeyInfo
	for _, s := range specs {
		value := fmt.Sprintf("%v", s.extract(cfg))
		if s.secret {
			value = maskSecret(value)
		}
		result = append(result, KeyInfo{
			Key:    s.key,
			EnvVar: s.env,
			Value:  value,
			Secret: s.secret,
		})
	}
	return result
}

func maskSecret(v string) string {
	if v == "" {
		return "(unset)"
	}
	return "(set)"
}

// SetKey writes a config key to the config file, or a secret key to the
// secrets file.
func SetKey(key, value string) error {
	return setKeyWith(newFileBackend(configFilePath()), fileSecrets{path: secretsFilePath()}, key, value)
}

func setKeyWith(b ConfigBackend, secrets fileSecrets, key, value string) error {
	s, ok := lookupSpec(key)
	if !ok {
		return fmt.Errorf("unknown config key: %q", key)
	}
	if s.secret {
		return secrets.Set(key, value)
	}

	if _, err := parseValue(s.typ, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if s.typ == kInt {
		i, _ := strconv.Atoi(value)
		return b.SetInt(key, i)
	}
	return b.SetString(key, value)
}

// ValidKeys returns the list of valid config key names.
func ValidKeys() []string {
	keys := make([]string, 0, len(specs))
	for _, s := range specs {
		keys = append(keys, s.key)
	}
	return keys
}

// IsSecret reports whether key is stored in the secrets file.
func IsSecret(key string) bool {
	s, ok := lookupSpec(key)
	return ok && s.secret
}
