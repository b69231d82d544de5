package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createValidConfig() *MapConfig {
	return &MapConfig{
		Name:        "Test Map",
		Description: "Test map",
		Layout: []string{
			"S..",
			".#.",
			"..G",
		},
	}
}

func TestValidateMapConfig_Valid(t *testing.T) {
	require.NoError(t, ValidateMapConfig(createValidConfig()))
}

func TestValidateMapConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*MapConfig)
	}{
		{"missing name", func(c *MapConfig) { c.Name = " " }},
		{"empty layout", func(c *MapConfig) { c.Layout = nil }},
		{"empty row", func(c *MapConfig) { c.Layout = []string{""} }},
		{"ragged layout", func(c *MapConfig) { c.Layout = []string{"S..", "..", "..G"} }},
		{"bad heuristic", func(c *MapConfig) { c.Heuristic = "teleport" }},
		{"negative budget", func(c *MapConfig) { c.MaxExpansions = -1 }},
		{"manhattan on diagonal map", func(c *MapConfig) { c.Diagonal, c.Heuristic = true, " Manhattan" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createValidConfig()
			tt.modify(config)
			assert.Error(t, ValidateMapConfig(config))
		})
	}

	assert.Error(t, ValidateMapConfig(nil))
}

func TestMapConfig_Build(t *testing.T) {
	config := createValidConfig()
	config.Diagonal = true

	layout, err := config.Build()
	require.NoError(t, err)
	assert.True(t, layout.Grid.Diagonal())
	assert.Equal(t, C{X: 2, Y: 2}, layout.Goal)
}

func TestMapConfig_HeuristicName(t *testing.T) {
	config := createValidConfig()
	assert.Equal(t, "manhattan", config.HeuristicName())

	config.Diagonal = true
	assert.Equal(t, "octile", config.HeuristicName())

	config.Heuristic = "Euclidean"
	assert.Equal(t, "euclidean", config.HeuristicName())
}

func TestResolveHeuristic(t *testing.T) {
	tests := []struct {
		name       string
		requested  string
		configured string
		diagonal   bool
		want       string
	}{
		{"default orthogonal", "", "", false, "manhattan"},
		{"default diagonal", "", "", true, "octile"},
		{"configured", "", " Euclidean ", false, "euclidean"},
		{"configured manhattan on diagonal grid", "", "manhattan", true, "octile"},
		{"configured manhattan on orthogonal grid", "", "manhattan", false, "manhattan"},
		{"requested wins", " ZERO", "octile", true, "zero"},
		{"requested manhattan is kept", "manhattan", "", true, "manhattan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveHeuristic(tt.requested, tt.configured, tt.diagonal))
		})
	}
}
