// Package config loads and saves the propbooks.yaml configuration that sits
// at the root of a books repository.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level propbooks.yaml configuration.
type Config struct {
	Property Property         `yaml:"property"`
	Fiscal   Fiscal           `yaml:"fiscal"`
	Receipts Receipts         `yaml:"receipts"`
	Meters   map[string]Meter `yaml:"meters,omitempty"`
	Git      Git              `yaml:"git"`
}

// Property identifies the rental property the books belong to.
type Property struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// Fiscal defines the fiscal year boundaries.
type Fiscal struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// Receipts holds receipt-entry defaults.
type Receipts struct {
	// DefaultAssetAccountID pre-selects the deposit account for new receipts.
	DefaultAssetAccountID int `yaml:"default_asset_account_id"`
	// Actor is recorded in the audit log for CLI actions.
	Actor string `yaml:"actor"`
}

// Meter maps a utility meter number to the unit it serves and the catalog
// item it bills against. Imported meter reads resolve through this table.
type Meter struct {
	UnitID int `yaml:"unit_id"`
	ItemID int `yaml:"item_id"`
}

// Git controls git integration for the books repository.
type Git struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a propbooks.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new books repository.
func Default(propertyName string) *Config {
	return &Config{
		Property: Property{
			Name: propertyName,
		},
		Fiscal: Fiscal{
			YearStart: "01-01",
		},
		Receipts: Receipts{
			DefaultAssetAccountID: 1010,
			Actor:                 "manager",
		},
		Git: Git{
			AutoCommit:  true,
			AuthorName:  "Propbooks",
			AuthorEmail: "books@propbooks.dev",
		},
	}
}
