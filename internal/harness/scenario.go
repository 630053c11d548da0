package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/stringvault/internal/filter"
)

// Scenario defines a conformance scenario for the string service.
type Scenario struct {
	// Name uniquely identifies this scenario. Used as the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Setup lists values created before the flow runs.
	// Setup creates must succeed.
	Setup []string `yaml:"setup,omitempty"`

	// Flow contains the operations under test, executed in order.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final trace and store contents.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one operation of the flow.
type Step struct {
	// Op is one of create, get, delete, list, query.
	Op string `yaml:"op"`

	// Value is the string operated on (create, get, delete).
	Value string `yaml:"value,omitempty"`

	// Filters is the structured filter set (list).
	Filters *Filters `yaml:"filters,omitempty"`

	// Query is the natural-language query text (query).
	Query string `yaml:"query,omitempty"`

	// Expect specifies the expected outcome. If nil, any outcome is accepted.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Filters mirrors filter.Set with YAML field names.
type Filters struct {
	IsPalindrome      *bool   `yaml:"is_palindrome,omitempty"`
	MinLength         *int    `yaml:"min_length,omitempty"`
	MaxLength         *int    `yaml:"max_length,omitempty"`
	WordCount         *int    `yaml:"word_count,omitempty"`
	ContainsCharacter *string `yaml:"contains_character,omitempty"`
}

// Set converts f to a filter.Set. A nil receiver is the empty set.
func (f *Filters) Set() filter.Set {
	if f == nil {
		return filter.Set{}
	}
	return filter.Set{
		IsPalindrome:      f.IsPalindrome,
		MinLength:         f.MinLength,
		MaxLength:         f.MaxLength,
		WordCount:         f.WordCount,
		ContainsCharacter: f.ContainsCharacter,
	}
}

// Expect specifies the expected result of a step.
type Expect struct {
	// Outcome is the expected outcome name (see Outcome constants).
	Outcome string `yaml:"outcome"`

	// Count is the expected number of records returned (list, query).
	Count *int `yaml:"count,omitempty"`

	// Values are the expected record values in order (list, query).
	Values []string `yaml:"values,omitempty"`
}

// Assertion validates the trace or the final store contents.
type Assertion struct {
	// Type specifies the assertion type:
	// - "final_count": the store holds exactly Count records
	// - "final_contains": a record for Value exists
	// - "final_absent": no record for Value exists
	// - "trace_count": Op appears exactly Count times in the flow trace
	Type string `yaml:"type"`

	// Value is the string looked up (final_contains, final_absent).
	Value string `yaml:"value,omitempty"`

	// Op is the operation counted (trace_count).
	Op string `yaml:"op,omitempty"`

	// Count is the expected number (final_count, trace_count).
	Count int `yaml:"count,omitempty"`
}

// Operation names.
const (
	OpCreate = "create"
	OpGet    = "get"
	OpDelete = "delete"
	OpList   = "list"
	OpQuery  = "query"
)

// Outcome names.
const (
	OutcomeOK         = "ok"
	OutcomeDuplicate  = "duplicate"
	OutcomeNotFound   = "not_found"
	OutcomeEmptyValue = "empty_value"
	OutcomeInvalid    = "invalid"
	OutcomeUnparsable = "unparsable"
	OutcomeError      = "error"
)

// Assertion type constants.
const (
	AssertFinalCount    = "final_count"
	AssertFinalContains = "final_contains"
	AssertFinalAbsent   = "final_absent"
	AssertTraceCount    = "trace_count"
)

var validOps = map[string]bool{
	OpCreate: true, OpGet: true, OpDelete: true, OpList: true, OpQuery: true,
}

var validOutcomes = map[string]bool{
	OutcomeOK: true, OutcomeDuplicate: true, OutcomeNotFound: true,
	OutcomeEmptyValue: true, OutcomeInvalid: true, OutcomeUnparsable: true,
	OutcomeError: true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML from memory.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	for i, step := range s.Flow {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step *Step) error {
	if !validOps[step.Op] {
		return fmt.Errorf("flow[%d]: unknown op %q", index, step.Op)
	}
	if step.Op == OpQuery && step.Query == "" {
		return fmt.Errorf("flow[%d]: query is required for query", index)
	}
	if step.Filters != nil && step.Op != OpList {
		return fmt.Errorf("flow[%d]: filters only apply to list", index)
	}
	if step.Expect == nil {
		return nil
	}
	if !validOutcomes[step.Expect.Outcome] {
		return fmt.Errorf("flow[%d].expect: unknown outcome %q", index, step.Expect.Outcome)
	}
	if (step.Expect.Count != nil || step.Expect.Values != nil) && step.Op != OpList && step.Op != OpQuery {
		return fmt.Errorf("flow[%d].expect: count and values only apply to list and query", index)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertFinalCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for final_count", index)
		}
	case AssertFinalContains, AssertFinalAbsent:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for %s", index, a.Type)
		}
	case AssertTraceCount:
		if !validOps[a.Op] {
			return fmt.Errorf("assertions[%d]: unknown op %q for trace_count", index, a.Op)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
