package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const secretsService = "hirekit"

func secretsFilePath() string {
	return filepath.Join(defaultDataDir(), "secrets.json")
}

// fileSecrets reads credentials from a JSON file of the form
// {"hirekit": {"<key>": "<value>"}} kept outside the config file.
type fileSecrets struct {
	path string
}

func (f fileSecrets) read() (map[string]map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	var secrets map[string]map[string]string
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parsing secrets file: %w", err)
	}
	return secrets, nil
}

func (f fileSecrets) Get(account string) (string, error) {
	secrets, err := f.read()
	if err != nil {
		return "", fmt.Errorf("secrets not available: %w", err)
	}
	val, ok := secrets[secretsService][account]
	if !ok {
		return "", fmt.Errorf("secret %q not found", account)
	}
	return val, nil
}

func (f fileSecrets) Set(account, value string) error {
	secrets, err := f.read()
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if secrets == nil {
		secrets = make(map[string]map[string]string)
	}
	if secrets[secretsService] == nil {
		secrets[secretsService] = make(map[string]string)
	}
	secrets[secretsService][account] = value

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating secrets dir: %w", err)
	}
	out, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, out, 0o600)
}
