// Package config loads and validates the scan configuration file.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/utils/safe"
	"gopkg.in/yaml.v3"
)

// maxFileSize limits the configuration file size.
const maxFileSize = 1 << 20

// DefaultFileNames are looked up in the source directory when no configuration file is given.
var DefaultFileNames = []string{".barrage.yaml", ".barrage.yml"}

// Find returns the default configuration file in dir, or "" if there is none.
func Find(dir string) string {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads, decodes and validates the configuration file. An empty path returns an empty configuration.
func Load(path string) (*model.ScanConfig, error) {
	if path == "" {
		return &model.ScanConfig{}, nil
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidConfig, "failed to open configuration file",
			goerr.V("path", path),
			goerr.V("cause", err.Error()),
		)
	}
	defer safe.Close(f)

	data, err := io.ReadAll(io.LimitReader(f, maxFileSize+1))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read configuration file", goerr.V("path", path))
	}
	if len(data) > maxFileSize {
		return nil, goerr.Wrap(types.ErrInvalidConfig, "configuration file is too large",
			goerr.V("path", path),
			goerr.V("max", maxFileSize),
		)
	}

	cfg, err := Decode(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load configuration", goerr.V("path", path))
	}
	return cfg, nil
}

// Decode parses YAML configuration data. Unknown keys are rejected.
func Decode(data []byte) (*model.ScanConfig, error) {
	var cfg model.ScanConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, goerr.Wrap(types.ErrInvalidConfig, "failed to decode configuration: "+err.Error())
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
