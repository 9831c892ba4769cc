// Package config loads the optional listdemo.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/controlkit/pkg/control"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "listdemo.yaml"

const (
	defaultTitle  = "controlkit list demo"
	defaultItems  = 1000
	defaultHeight = 12
)

// Config represents listdemo.yaml.
type Config struct {
	List ListConfig `yaml:"list"`
	Row  RowConfig  `yaml:"row"`
}

// ListConfig describes the virtualized list.
type ListConfig struct {
	Title  string `yaml:"title,omitempty"`
	Items  int    `yaml:"items,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// RowConfig holds the settings template every row is constructed from.
type RowConfig struct {
	Defaults map[string]any `yaml:"defaults,omitempty"`
}

// Resolved contains configuration with defaults applied.
type Resolved struct {
	Title  string
	Items  int
	Height int
	// RowDefaults is handed to the row pool and cloned per construction.
	RowDefaults control.Settings
}

// LoadOptional reads listdemo.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolve loads listdemo.yaml (if present) and applies defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(cfg.List.Title)
	if title == "" {
		title = defaultTitle
	}

	items := cfg.List.Items
	if items == 0 {
		items = defaultItems
	}
	height := cfg.List.Height
	if height == 0 {
		height = defaultHeight
	}
	if items < 0 {
		return nil, fmt.Errorf("list.items must be positive, got %d", items)
	}
	if height < 0 {
		return nil, fmt.Errorf("list.height must be positive, got %d", height)
	}

	defaults := control.Settings(cfg.Row.Defaults)
	if defaults == nil {
		defaults = control.Settings{}
	}
	if _, ok := defaults["id"]; ok {
		return nil, fmt.Errorf("row.defaults must not set id: every row would share it")
	}

	return &Resolved{
		Title:       title,
		Items:       items,
		Height:      height,
		RowDefaults: defaults,
	}, nil
}
