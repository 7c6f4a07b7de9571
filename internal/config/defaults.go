package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ShopDefaults seeds the settings row and worker roster on first run, so a
// new installation can ship with the shop's details pre-filled.
type ShopDefaults struct {
	ShopName string `yaml:"shopName"`
	Address  string `yaml:"address"`
	Phone1   string `yaml:"phone1"`
	Phone2   string `yaml:"phone2"`
	PageSize string `yaml:"pageSize"`

	Workers []WorkerDefault `yaml:"workers"`
}

// WorkerDefault is one seeded worker entry.
type WorkerDefault struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"` // cutter, checker or karigar
}

// LoadShopDefaults reads the YAML defaults file. A missing file is not an
// error; it returns (nil, nil) and seeding is skipped.
func LoadShopDefaults(path string) (*ShopDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading shop defaults: %w", err)
	}

	defaults := &ShopDefaults{}
	if err := yaml.Unmarshal(data, defaults); err != nil {
		return nil, fmt.Errorf("parsing shop defaults: %w", err)
	}
	return defaults, nil
}
