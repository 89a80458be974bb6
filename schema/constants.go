package schema

// Custom string types for type safety.
type (
	// Role represents the architectural role of a structural unit.
	Role string

	// ContributionCategory represents one entry in the load taxonomy.
	ContributionCategory string

	// ViolationKind represents the kind of a reported violation.
	ViolationKind string

	// Severity represents the severity level of a violation.
	Severity string

	// OutputMode represents the format of the output.
	OutputMode string

	// StreamPolicy controls how stream pipelines are counted.
	StreamPolicy string

	// AggregatePolicy controls how aggregate-checked unit scores are combined.
	AggregatePolicy string
)

// All roles supported.
const (
	Unclassified       Role = "unclassified"
	Controller         Role = "controller"
	DomainService      Role = "domain-service"
	ApplicationService Role = "application-service"
	Entity             Role = "entity"
	ValueObject        Role = "value-object"
	Repository         Role = "repository"
)

// Load contribution categories.
const (
	CollaboratorRef ContributionCategory = "collaborator-reference"
	Branch          ContributionCategory = "branch"
	NestedBranch    ContributionCategory = "nested-branch"
	Loop            ContributionCategory = "loop"
	Try             ContributionCategory = "try"
	Catch           ContributionCategory = "catch"
	Lambda          ContributionCategory = "lambda"
	StreamStage     ContributionCategory = "stream-stage"
)

// All violation kinds supported.
const (
	OverLoad        ViolationKind = "OverLoad"
	UnderLoad       ViolationKind = "UnderLoad"
	LowCohesion     ViolationKind = "LowCohesion"
	DivergentChange ViolationKind = "DivergentChange"
	ShotgunSurgery  ViolationKind = "ShotgunSurgery"
)

// All severities supported, ordered from lowest to highest.
const (
	InfoSeverity    Severity = "info"
	WarningSeverity Severity = "warning"
	ErrorSeverity   Severity = "error"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// Stream pipeline counting policies.
const (
	PerStage    StreamPolicy = "per-stage" // default
	PerPipeline StreamPolicy = "per-pipeline"
)

// Aggregate scoring policies for entity and value-object units.
const (
	SumAggregate AggregatePolicy = "sum" // default
	MaxAggregate AggregatePolicy = "max"
)

// AllRoles returns a list of all classifiable roles.
var AllRoles = []Role{Controller, DomainService, ApplicationService, Entity, ValueObject, Repository}

// ValidRoles lists all roles a marker map may target.
var ValidRoles = map[Role]struct{}{
	Controller:         {},
	DomainService:      {},
	ApplicationService: {},
	Entity:             {},
	ValueObject:        {},
	Repository:         {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
}

// ValidSeverities lists all valid severities.
var ValidSeverities = map[Severity]struct{}{
	InfoSeverity:    {},
	WarningSeverity: {},
	ErrorSeverity:   {},
}

// ValidStreamPolicies lists all valid stream counting policies.
var ValidStreamPolicies = map[StreamPolicy]struct{}{
	PerStage:    {},
	PerPipeline: {},
}

// ValidAggregatePolicies lists all valid aggregate scoring policies.
var ValidAggregatePolicies = map[AggregatePolicy]struct{}{
	SumAggregate: {},
	MaxAggregate: {},
}

// AggregateRoles are the roles whose ceiling applies to the unit as a whole
// rather than to each method individually.
var AggregateRoles = map[Role]struct{}{
	Entity:      {},
	ValueObject: {},
}

// DefaultThresholds returns the default role ceiling table.
// A fresh map is returned so callers can layer overrides without
// mutating shared state.
func DefaultThresholds() map[Role]int {
	return map[Role]int{
		Controller:         7,
		DomainService:      7,
		ApplicationService: 7,
		Entity:             9,
		ValueObject:        9,
		Repository:         5,
	}
}

// DefaultSeverities returns the default severity per violation kind.
func DefaultSeverities() map[ViolationKind]Severity {
	return map[ViolationKind]Severity{
		OverLoad:        ErrorSeverity,
		LowCohesion:     WarningSeverity,
		DivergentChange: InfoSeverity,
		ShotgunSurgery:  InfoSeverity,
		UnderLoad:       InfoSeverity,
	}
}

// SeverityRank maps a severity to an integer for ordering. Higher is worse.
func SeverityRank(s Severity) int {
	switch s {
	case ErrorSeverity:
		return 3
	case WarningSeverity:
		return 2
	case InfoSeverity:
		return 1
	default:
		return 0
	}
}

// MeetsThreshold reports whether severity s is at or above the threshold t.
func MeetsThreshold(s, t Severity) bool {
	return SeverityRank(s) >= SeverityRank(t)
}
