package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sunthewhat/easy-cert-render/common"
	"github.com/sunthewhat/easy-cert-render/common/util"
	"github.com/sunthewhat/easy-cert-render/type/shared"
	"gopkg.in/yaml.v3"
)

func LoadConfig() {
	yml, readErr := os.ReadFile("config.yml")
	if readErr != nil {
		slog.Error("Failed to read config.yml", "error", readErr)
		os.Exit(1)
	}

	config, parseErr := Parse(yml)
	if parseErr != nil {
		slog.Error("Invalid config.yml", "error", parseErr)
		os.Exit(1)
	}

	common.Config = config
}

// Parse decodes and validates a config document.
func Parse(yml []byte) (*shared.Config, error) {
	config := new(shared.Config)

	if err := yaml.Unmarshal(yml, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := util.ValidateStruct(config); err != nil {
		if problems := util.GetValidationErrors(err); len(problems) > 0 {
			return nil, fmt.Errorf("invalid config: %v", problems)
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
