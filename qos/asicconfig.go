package qos

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AsicConfig is a vendor register snapshot taken from the device under test.
// SharedLimitSP0 is the shared limit of service pool 0 in cells, as reported
// by the MMU; when set it may supersede the computed shared buffer.
type AsicConfig struct {
	SharedLimitSP0 *int64                 `yaml:"shared_limit_sp0,omitempty"`
	Registers      map[string]interface{} `yaml:",inline"`
}

// LoadAsicConfig reads a register snapshot (YAML or JSON) from path.
func LoadAsicConfig(path string) (*AsicConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asic config: %w", err)
	}
	var cfg AsicConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing asic config: %w", err)
	}
	return &cfg, nil
}
