package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/cogload/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }
func strPtr(s string) *string { return &s }

// defaultRawInput mirrors what Viper produces when no flag is touched.
func defaultRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		SeverityThreshold: string(schema.ErrorSeverity),
		Format:            string(schema.TextOut),
		Workers:           DefaultWorkers,
		CohesionFloor:     DefaultCohesionFloor,
		StreamPolicy:      string(schema.PerStage),
		AggregatePolicy:   string(schema.SumAggregate),
		MinCoChange:       DefaultMinCoChange,
		Color:             "yes",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, defaultRawInput()))

	assert.Equal(t, []string{"."}, cfg.Paths)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.ErrorSeverity, cfg.SeverityThreshold)
	assert.Equal(t, schema.PerStage, cfg.StreamPolicy)
	assert.Equal(t, schema.SumAggregate, cfg.AggregatePolicy)
	assert.Equal(t, 7, cfg.Thresholds[schema.Controller])
	assert.Equal(t, 5, cfg.Thresholds[schema.Repository])
	assert.Equal(t, 9, cfg.Thresholds[schema.Entity])
	assert.Equal(t, schema.ErrorSeverity, cfg.Severities[schema.OverLoad])
	assert.Equal(t, schema.WarningSeverity, cfg.Severities[schema.LowCohesion])
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"bad format", func(in *ConfigRawInput) { in.Format = "xml" }},
		{"bad severity", func(in *ConfigRawInput) { in.SeverityThreshold = "fatal" }},
		{"cohesion floor above one", func(in *ConfigRawInput) { in.CohesionFloor = 1.5 }},
		{"cohesion floor negative", func(in *ConfigRawInput) { in.CohesionFloor = -0.1 }},
		{"min cochange zero", func(in *ConfigRawInput) { in.MinCoChange = 0 }},
		{"bad stream policy", func(in *ConfigRawInput) { in.StreamPolicy = "per-method" }},
		{"bad aggregate policy", func(in *ConfigRawInput) { in.AggregatePolicy = "median" }},
		{"bad color", func(in *ConfigRawInput) { in.Color = "maybe" }},
		{"bad threshold", func(in *ConfigRawInput) { in.Thresholds.Entity = intPtr(0) }},
		{"bad severity override", func(in *ConfigRawInput) { in.Severities.OverLoad = strPtr("fatal") }},
		{"bad marker role", func(in *ConfigRawInput) { in.Markers = map[string]string{"@X": "helper"} }},
		{"missing co-change source", func(in *ConfigRawInput) { in.CoChangeSource = "/does/not/exist.ndjson" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := defaultRawInput()
			tt.mutate(input)
			err := ProcessAndValidate(&Config{}, input)
			require.Error(t, err)

			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestProcessAndValidateOverrides(t *testing.T) {
	input := defaultRawInput()
	input.PathArgs = []string{"./model", "./api"}
	input.Exclude = "vendor/, *.gen.json ,"
	input.Thresholds.Controller = intPtr(10)
	input.Severities.LowCohesion = strPtr("error")
	input.Markers = map[string]string{"@RestController": "Controller"}
	input.StreamPolicy = "Per-Pipeline"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, []string{"./model", "./api"}, cfg.Paths)
	assert.Equal(t, []string{"vendor/", "*.gen.json"}, cfg.Excludes)
	assert.Equal(t, 10, cfg.Thresholds[schema.Controller])
	assert.Equal(t, 7, cfg.Thresholds[schema.DomainService])
	assert.Equal(t, schema.ErrorSeverity, cfg.Severities[schema.LowCohesion])
	assert.Equal(t, schema.Controller, cfg.RoleMarkers["@RestController"])
	assert.Equal(t, schema.PerPipeline, cfg.StreamPolicy)
}

func TestProcessRoleMarkersFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "markers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"\"@RestController\": controller\n\"@Repository\": repository\n"), 0o644))

	input := defaultRawInput()
	input.RoleMarkerMap = path
	// File entries win over the config section.
	input.Markers = map[string]string{"@RestController": "entity"}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.Controller, cfg.RoleMarkers["@RestController"])
	assert.Equal(t, schema.Repository, cfg.RoleMarkers["@Repository"])
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, defaultRawInput()))
	cfg.RoleMarkers["@Service"] = schema.DomainService

	clone := cfg.Clone()
	clone.Thresholds[schema.Controller] = 1
	clone.Severities[schema.OverLoad] = schema.InfoSeverity
	clone.RoleMarkers["@Service"] = schema.Entity
	clone.Paths = append(clone.Paths, "extra")

	assert.Equal(t, 7, cfg.Thresholds[schema.Controller])
	assert.Equal(t, schema.ErrorSeverity, cfg.Severities[schema.OverLoad])
	assert.Equal(t, schema.DomainService, cfg.RoleMarkers["@Service"])
	assert.Equal(t, []string{"."}, cfg.Paths)
}
