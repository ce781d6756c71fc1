package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
// Unknown keys are rejected so a typo does not silently drop a filter.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, configError(filePath, fmt.Errorf("error accessing config file: %w", err))
	}
	if fileInfo.IsDir() {
		return nil, configError(filePath, fmt.Errorf("%s is a directory, not a file", filePath))
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, configError(filePath, fmt.Errorf("error reading config file: %w", err))
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		tree, err := toml.LoadBytes(fileData)
		if err != nil {
			return nil, configError(filePath, fmt.Errorf("error parsing TOML file: %w", err))
		}
		if err := tree.Unmarshal(&config); err != nil {
			return nil, configError(filePath, fmt.Errorf("error decoding TOML file: %w", err))
		}
		if err := checkTOMLKeys(tree); err != nil {
			return nil, configError(filePath, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(fileData))
		dec.KnownFields(true)
		if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, configError(filePath, fmt.Errorf("error parsing YAML file: %w", err))
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(fileData))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, configError(filePath, fmt.Errorf("error parsing JSON file: %w", err))
		}
	default:
		return nil, configError(filePath, fmt.Errorf("unsupported config file format: %s", fileExtension))
	}

	if config.Days < 0 {
		return nil, configError(filePath, fmt.Errorf("days must not be negative, got %d", config.Days))
	}

	return &config, nil
}

var tomlKeys = map[string]bool{
	"profile": true, "days": true, "accounts": true, "service": true, "filters": true,
	"group_by": true, "granularity": true, "metrics": true, "output": true, "report_type": true,
}

func checkTOMLKeys(tree *toml.Tree) error {
	for _, key := range tree.Keys() {
		if !tomlKeys[key] {
			return fmt.Errorf("unknown key %q in TOML file", key)
		}
	}
	return nil
}

func configError(path string, err error) error {
	return &types.ConfigurationError{Field: "--config-file", Message: path, Err: err}
}
