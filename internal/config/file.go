package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyr-testing/reportverify/internal/errors"
	"github.com/zephyr-testing/reportverify/internal/fs"
)

// FileConfig is the optional YAML defaults file. Every key is optional;
// unset keys leave the built-in default in place.
//
//	max_size: 5
//	max_errors: 50
//	max_failures: 50
//	versions_url: https://testing.zephyrproject.org/daily_tests/versions.json
type FileConfig struct {
	MaxSize     *float64 `yaml:"max_size"`
	MaxErrors   *int     `yaml:"max_errors"`
	MaxFailures *int     `yaml:"max_failures"`
	VersionsURL string   `yaml:"versions_url"`
}

// LoadFile reads and validates the YAML defaults file at path.
// Unknown keys, multiple documents and invalid values return E_INVALID_CONFIG.
// An empty file is valid and sets nothing.
func LoadFile(filesystem fs.FS, path string) (FileConfig, error) {
	details := map[string]string{"config": path}

	data, err := filesystem.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, errors.WrapWithDetails(errors.EInvalidConfig, "config file not found: "+path, err, details)
		}
		return FileConfig{}, errors.WrapWithDetails(errors.EInvalidConfig, "failed to read config file", err, details)
	}

	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fc); err != nil {
		if err == io.EOF {
			return FileConfig{}, nil
		}
		msg := "invalid config file: " + err.Error()
		if strings.Contains(err.Error(), "not found in type") {
			msg = "unknown key in config file: " + err.Error()
		}
		return FileConfig{}, errors.WrapWithDetails(errors.EInvalidConfig, msg, err, details)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return FileConfig{}, errors.NewWithDetails(errors.EInvalidConfig, "config file contains multiple documents or trailing content", details)
	}

	if err := validateFile(fc); err != nil {
		return FileConfig{}, errors.NewWithDetails(errors.EInvalidConfig, err.Error(), details)
	}

	return fc, nil
}

func validateFile(fc FileConfig) error {
	if fc.MaxSize != nil {
		if err := checkMaxSize("max_size", *fc.MaxSize); err != nil {
			return err
		}
	}
	if fc.MaxErrors != nil {
		if err := checkCount("max_errors", *fc.MaxErrors); err != nil {
			return err
		}
	}
	if fc.MaxFailures != nil {
		if err := checkCount("max_failures", *fc.MaxFailures); err != nil {
			return err
		}
	}
	if fc.VersionsURL != "" {
		if err := checkURL("versions_url", fc.VersionsURL); err != nil {
			return err
		}
	}
	return nil
}
