package balance

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/balance.yaml
var defaultBalanceYAML []byte

// Load reads the balance tables.
// Search order: customPath -> ~/.santavors/configs/balance.yaml ->
// ./configs/balance.yaml -> embedded default.
//
// Unlike per-game tuning, malformed balance data is not recoverable: the
// simulation cannot establish its stacking and clamping invariants without
// it, so any parse or validation failure is returned as an error and the
// caller is expected to fail fast.
func Load(customPath string) (*Store, error) {
	data, src, err := readTables(customPath)
	if err != nil {
		return nil, err
	}

	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("balance: cannot parse %s: %w", src, err)
	}

	store, err := NewStore(t)
	if err != nil {
		return nil, fmt.Errorf("balance: invalid data in %s: %w", src, err)
	}
	return store, nil
}

func readTables(customPath string) ([]byte, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, "", fmt.Errorf("balance: cannot read %s: %w", customPath, err)
		}
		return data, customPath, nil
	}

	if p := userConfigPath("balance.yaml"); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			return data, p, nil
		}
	}

	if data, err := os.ReadFile("configs/balance.yaml"); err == nil {
		return data, "configs/balance.yaml", nil
	}

	return defaultBalanceYAML, "embedded default", nil
}

// userConfigPath returns the path under the user config directory, or empty
// if the home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".santavors", "configs", filename)
}

// MustLoadDefault parses the embedded default tables. It panics on failure,
// which can only mean the embedded file itself is broken; tests use it to
// get a valid store without touching the filesystem.
func MustLoadDefault() *Store {
	var t Tables
	if err := yaml.Unmarshal(defaultBalanceYAML, &t); err != nil {
		panic(fmt.Sprintf("balance: embedded default is unparsable: %v", err))
	}
	store, err := NewStore(t)
	if err != nil {
		panic(fmt.Sprintf("balance: embedded default is invalid: %v", err))
	}
	return store
}
