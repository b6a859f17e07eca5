package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dashgen/pkg/errors"
)

// Load reads and decodes the configuration file at path. Files with a .toml
// extension are decoded as TOML; everything else as JSON. The decoded config
// is not validated; call Validate separately.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeConfigNotFound, "configuration file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigNotFound, err, "cannot read configuration file %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return decodeTOML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "invalid JSON in configuration file")
	}
	return &cfg, nil
}

// decodeTOML routes TOML input through the JSON decoder so both formats
// share one data model and one set of shape errors.
func decodeTOML(data []byte) (*Config, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "invalid TOML in configuration file")
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "cannot normalize TOML configuration")
	}
	return decodeJSON(buf)
}
