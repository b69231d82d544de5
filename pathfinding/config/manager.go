package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/pathfinder/pathfinding/grid"
	"github.com/wricardo/pathfinder/pathfinding/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultMapName is the map used when a request names none
const DefaultMapName = "demo"

// minimalMapID names the built-in map used when the directory has none
const minimalMapID = "default"

// Supported map file extensions, in lookup order
var extensions = []string{".json", ".yaml", ".yml"}

// Manager handles map configuration loading and caching.
//
// A map ID names exactly one file: when several files share an ID the
// first extension in lookup order wins, and only that file is cached.
type Manager struct {
	configDir     string
	defaultID     string
	defaultConfig *grid.MapConfig
	configs       map[string]*cachedConfig
	mu            sync.RWMutex
}

// cachedConfig is a parsed map and the file it came from
type cachedConfig struct {
	file   string
	config *grid.MapConfig
}

// matches reports whether the entry answers a lookup for name
func (c *cachedConfig) matches(name string) bool {
	return !supported(name) || filepath.Base(c.file) == name
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*cachedConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a configuration by name. The name may carry a file
// extension; without one .json, .yaml and .yml are tried in that order.
func (m *Manager) LoadConfig(name string) (*grid.MapConfig, error) {
	id, err := mapID(name)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	if cached, exists := m.configs[id]; exists && cached.matches(name) {
		m.mu.RUnlock()
		return cached.config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, exists := m.configs[id]; exists && cached.matches(name) {
		return cached.config, nil
	}

	configPath, err := m.findFile(name)
	if err != nil {
		return nil, err
	}

	config, err := readConfigFile(configPath)
	if err != nil {
		return nil, err
	}

	// A file shadowed by another extension is served but never cached
	if canonical, err := m.findFile(id); err == nil && canonical == configPath {
		m.configs[id] = &cachedConfig{file: configPath, config: config}
	}
	return config, nil
}

// ListConfigs returns information about all available configurations.
// Invalid files are skipped; when two files share a name the one found
// first in directory order wins.
func (m *Manager) ListConfigs() ([]*service.MapInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var infos []*service.MapInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !supported(entry.Name()) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if seen[id] {
			continue
		}

		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			continue
		}
		seen[id] = true

		infos = append(infos, describe(entry.Name(), id, config))
	}

	return infos, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *grid.MapConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// DefaultID returns the map ID of the default configuration
func (m *Manager) DefaultID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultID
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	id, _ := mapID(name)
	m.setDefault(id, config)
	return nil
}

// ReloadConfig drops a cached configuration and reads it again from disk
func (m *Manager) ReloadConfig(name string) error {
	id, err := mapID(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.configs, id)
	m.mu.Unlock()

	_, err = m.LoadConfig(name)
	return err
}

// RefreshCache reloads all cached configurations from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	clear(m.configs)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// Count returns the number of cached configurations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// SaveConfig saves a configuration to disk. A .yaml or .yml name is written
// as YAML, anything else as JSON.
func (m *Manager) SaveConfig(name string, config *grid.MapConfig) error {
	id, err := mapID(name)
	if err != nil {
		return err
	}

	if err := grid.ValidateMapConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !supported(filename) {
		filename = name + ".json"
	}
	target := filepath.Join(m.configDir, filename)

	if existing, err := m.findFile(id); err == nil && existing != target {
		return fmt.Errorf("%w: map %s is already stored in %s", ErrInvalidConfig, id, filepath.Base(existing))
	}

	var data []byte
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[id] = &cachedConfig{file: target, config: config}
	m.mu.Unlock()

	return nil
}

// loadDefaultConfig loads the default configuration
func (m *Manager) loadDefaultConfig() error {
	id := DefaultMapName
	config, err := m.LoadConfig(id)
	if err != nil {
		// Try to load the first available config
		infos, listErr := m.ListConfigs()
		if listErr != nil || len(infos) == 0 {
			m.setDefault(minimalMapID, createMinimalConfig())
			return nil
		}

		id = infos[0].MapID
		config, err = m.LoadConfig(infos[0].Filename)
		if err != nil {
			m.setDefault(minimalMapID, createMinimalConfig())
			return nil
		}
	}

	m.setDefault(id, config)
	return nil
}

func (m *Manager) setDefault(id string, config *grid.MapConfig) {
	m.mu.Lock()
	m.defaultID = id
	m.defaultConfig = config
	m.mu.Unlock()
}

// findFile resolves name to an existing file in the config directory
func (m *Manager) findFile(name string) (string, error) {
	candidates := []string{name}
	if !supported(name) {
		candidates = candidates[:0]
		for _, ext := range extensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, candidate := range candidates {
		configPath := filepath.Join(m.configDir, candidate)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return "", fmt.Errorf("%w: %s", ErrConfigNotFound, name)
}

// readConfigFile parses and validates a JSON or YAML map file
func readConfigFile(configPath string) (*grid.MapConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config grid.MapConfig
	switch filepath.Ext(configPath) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, filepath.Base(configPath), err)
	}

	if err := grid.ValidateMapConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// mapID strips a supported extension and rejects names that would escape
// the config directory
func mapID(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: bad map name %q", ErrInvalidConfig, name)
	}
	if supported(name) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name, nil
}

func supported(filename string) bool {
	return slices.Contains(extensions, filepath.Ext(filename))
}

func describe(filename, id string, config *grid.MapConfig) *service.MapInfo {
	info := &service.MapInfo{
		Filename:    filename,
		MapID:       id,
		Name:        config.Name,
		Description: config.Description,
		Height:      len(config.Layout),
		Diagonal:    config.Diagonal,
		Heuristic:   config.HeuristicName(),
	}
	if len(config.Layout) > 0 {
		info.Width = len(config.Layout[0])
	}
	for _, row := range config.Layout {
		info.Walls += strings.Count(row, string(grid.CellWall))
	}
	return info
}

// createMinimalConfig creates a minimal valid configuration
func createMinimalConfig() *grid.MapConfig {
	return &grid.MapConfig{
		Name:        "default",
		Description: "Default minimal map",
		Layout: []string{
			"S....",
			".###.",
			"....G",
		},
	}
}
