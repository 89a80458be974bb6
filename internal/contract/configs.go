package contract

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/huangsam/cogload/schema"
	"gopkg.in/yaml.v3"
)

// Default values for configuration.
const (
	DefaultCohesionFloor = 0.5
	DefaultMinCoChange   = 3
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ThresholdsRawInput holds role ceiling overrides from the YAML config file.
// Only fields present in the file override the defaults, hence the pointers.
type ThresholdsRawInput struct {
	Controller         *int `mapstructure:"controller"`
	DomainService      *int `mapstructure:"domain-service"`
	ApplicationService *int `mapstructure:"application-service"`
	Entity             *int `mapstructure:"entity"`
	ValueObject        *int `mapstructure:"value-object"`
	Repository         *int `mapstructure:"repository"`
}

// SeveritiesRawInput holds severity overrides per violation kind from the
// YAML config file.
type SeveritiesRawInput struct {
	OverLoad        *string `mapstructure:"overload"`
	UnderLoad       *string `mapstructure:"underload"`
	LowCohesion     *string `mapstructure:"low-cohesion"`
	DivergentChange *string `mapstructure:"divergent-change"`
	ShotgunSurgery  *string `mapstructure:"shotgun-surgery"`
}

// Config holds the runtime configuration for the analysis.
// This struct is the "final, validated" config: it is built once by
// ProcessAndValidate and passed explicitly into every component.
type Config struct {
	Paths       []string
	Excludes    []string
	Workers     int
	Output      schema.OutputMode
	OutputFile  string
	StrictParse bool

	SeverityThreshold schema.Severity
	CohesionFloor     float64
	MinCoChange       int
	StreamPolicy      schema.StreamPolicy
	AggregatePolicy   schema.AggregatePolicy

	// Thresholds is the immutable role ceiling table for the run.
	Thresholds map[schema.Role]int
	// Severities is the effective severity per violation kind.
	Severities map[schema.ViolationKind]schema.Severity
	// RoleMarkers maps ecosystem-specific marker strings to roles.
	RoleMarkers map[string]schema.Role

	CoChangePath string

	UseColors bool
	Width     int // Terminal width override (0 = auto-detect)
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	PathArgs []string

	RoleMarkerMap     string  `mapstructure:"role-marker-map"`
	CoChangeSource    string  `mapstructure:"co-change-source"`
	SeverityThreshold string  `mapstructure:"severity-threshold"`
	Format            string  `mapstructure:"format"`
	OutputFile        string  `mapstructure:"output-file"`
	StrictParse       bool    `mapstructure:"strict-parse"`
	Exclude           string  `mapstructure:"exclude"`
	Workers           int     `mapstructure:"workers"`
	CohesionFloor     float64 `mapstructure:"cohesion-floor"`
	StreamPolicy      string  `mapstructure:"stream-policy"`
	AggregatePolicy   string  `mapstructure:"aggregate-policy"`
	MinCoChange       int     `mapstructure:"min-cochange"`
	Color             string  `mapstructure:"color"`
	Width             int     `mapstructure:"width"`

	// --- Config-file-only sections ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
	Severities SeveritiesRawInput `mapstructure:"severities"`
	// Markers allows embedding the role marker map directly in the config
	// file instead of a separate --role-marker-map file.
	Markers map[string]string `mapstructure:"markers"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Paths != nil {
		clone.Paths = append([]string(nil), c.Paths...)
	}
	if c.Excludes != nil {
		clone.Excludes = append([]string(nil), c.Excludes...)
	}
	if c.Thresholds != nil {
		clone.Thresholds = make(map[schema.Role]int, len(c.Thresholds))
		for k, v := range c.Thresholds {
			clone.Thresholds[k] = v
		}
	}
	if c.Severities != nil {
		clone.Severities = make(map[schema.ViolationKind]schema.Severity, len(c.Severities))
		for k, v := range c.Severities {
			clone.Severities[k] = v
		}
	}
	if c.RoleMarkers != nil {
		clone.RoleMarkers = make(map[string]schema.Role, len(c.RoleMarkers))
		for k, v := range c.RoleMarkers {
			clone.RoleMarkers[k] = v
		}
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct. Any failure here is a ConfigError:
// the run aborts before analysis, since continuing on a broken configuration
// could produce a misleading pass/fail verdict.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return NewConfigError(err)
	}
	if err := processThresholds(cfg, input); err != nil {
		return NewConfigError(err)
	}
	if err := processSeverities(cfg, input); err != nil {
		return NewConfigError(err)
	}
	if err := processRoleMarkers(cfg, input); err != nil {
		return NewConfigError(err)
	}
	if err := processCoChangeSource(cfg, input); err != nil {
		return NewConfigError(err)
	}
	return nil
}

// validateSimpleInputs handles the scalar flags.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	if len(input.PathArgs) > 0 {
		cfg.Paths = input.PathArgs
	} else {
		cfg.Paths = []string{"."}
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Format))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid format '%s'. must be text or json", input.Format)
	}
	cfg.OutputFile = input.OutputFile
	cfg.StrictParse = input.StrictParse

	cfg.SeverityThreshold = schema.Severity(strings.ToLower(input.SeverityThreshold))
	if _, ok := schema.ValidSeverities[cfg.SeverityThreshold]; !ok {
		return fmt.Errorf("invalid severity threshold '%s'. must be info, warning or error", input.SeverityThreshold)
	}

	cfg.Workers = input.Workers
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	cfg.CohesionFloor = input.CohesionFloor
	if cfg.CohesionFloor < 0 || cfg.CohesionFloor > 1 {
		return fmt.Errorf("invalid cohesion floor %v. must be within [0, 1]", input.CohesionFloor)
	}

	cfg.MinCoChange = input.MinCoChange
	if cfg.MinCoChange < 1 {
		return fmt.Errorf("invalid min-cochange %d. must be at least 1", input.MinCoChange)
	}

	cfg.StreamPolicy = schema.StreamPolicy(strings.ToLower(input.StreamPolicy))
	if _, ok := schema.ValidStreamPolicies[cfg.StreamPolicy]; !ok {
		return fmt.Errorf("invalid stream policy '%s'. must be per-stage or per-pipeline", input.StreamPolicy)
	}

	cfg.AggregatePolicy = schema.AggregatePolicy(strings.ToLower(input.AggregatePolicy))
	if _, ok := schema.ValidAggregatePolicies[cfg.AggregatePolicy]; !ok {
		return fmt.Errorf("invalid aggregate policy '%s'. must be sum or max", input.AggregatePolicy)
	}

	if input.Exclude != "" {
		for _, e := range strings.Split(input.Exclude, ",") {
			if e = strings.TrimSpace(e); e != "" {
				cfg.Excludes = append(cfg.Excludes, e)
			}
		}
	}

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	cfg.UseColors = useColors
	cfg.Width = input.Width

	return nil
}

// processThresholds merges role ceiling overrides over the defaults.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	cfg.Thresholds = schema.DefaultThresholds()
	overrides := map[schema.Role]*int{
		schema.Controller:         input.Thresholds.Controller,
		schema.DomainService:      input.Thresholds.DomainService,
		schema.ApplicationService: input.Thresholds.ApplicationService,
		schema.Entity:             input.Thresholds.Entity,
		schema.ValueObject:        input.Thresholds.ValueObject,
		schema.Repository:         input.Thresholds.Repository,
	}
	for role, v := range overrides {
		if v == nil {
			continue
		}
		if *v < 1 {
			return fmt.Errorf("invalid threshold %d for role %s. must be at least 1", *v, role)
		}
		cfg.Thresholds[role] = *v
	}
	return nil
}

// processSeverities merges severity overrides over the defaults.
func processSeverities(cfg *Config, input *ConfigRawInput) error {
	cfg.Severities = schema.DefaultSeverities()
	overrides := map[schema.ViolationKind]*string{
		schema.OverLoad:        input.Severities.OverLoad,
		schema.UnderLoad:       input.Severities.UnderLoad,
		schema.LowCohesion:     input.Severities.LowCohesion,
		schema.DivergentChange: input.Severities.DivergentChange,
		schema.ShotgunSurgery:  input.Severities.ShotgunSurgery,
	}
	for kind, v := range overrides {
		if v == nil {
			continue
		}
		sev := schema.Severity(strings.ToLower(*v))
		if _, ok := schema.ValidSeverities[sev]; !ok {
			return fmt.Errorf("invalid severity '%s' for kind %s", *v, kind)
		}
		cfg.Severities[kind] = sev
	}
	return nil
}

// processRoleMarkers loads the marker-to-role mapping from the config file
// section and, when provided, the --role-marker-map file. File entries win.
func processRoleMarkers(cfg *Config, input *ConfigRawInput) error {
	cfg.RoleMarkers = make(map[string]schema.Role)

	for marker, roleStr := range input.Markers {
		role, err := parseRole(roleStr)
		if err != nil {
			return fmt.Errorf("markers config: %w", err)
		}
		cfg.RoleMarkers[marker] = role
	}

	if input.RoleMarkerMap == "" {
		return nil
	}
	data, err := os.ReadFile(input.RoleMarkerMap)
	if err != nil {
		return fmt.Errorf("cannot read role marker map: %w", err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("cannot parse role marker map %s: %w", input.RoleMarkerMap, err)
	}
	for marker, roleStr := range raw {
		role, err := parseRole(roleStr)
		if err != nil {
			return fmt.Errorf("role marker map %s: %w", input.RoleMarkerMap, err)
		}
		cfg.RoleMarkers[marker] = role
	}
	return nil
}

// processCoChangeSource validates the optional co-change source path.
func processCoChangeSource(cfg *Config, input *ConfigRawInput) error {
	cfg.CoChangePath = input.CoChangeSource
	if cfg.CoChangePath == "" {
		return nil
	}
	if _, err := os.Stat(cfg.CoChangePath); err != nil {
		return fmt.Errorf("co-change source not readable: %w", err)
	}
	return nil
}

// parseRole converts a config string into a Role, rejecting unknown roles.
func parseRole(s string) (schema.Role, error) {
	role := schema.Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := schema.ValidRoles[role]; !ok {
		return "", fmt.Errorf("unknown role '%s'", s)
	}
	return role, nil
}
