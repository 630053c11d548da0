package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// ValidationError reports a config that does not satisfy the schema.
type ValidationError struct {
	// Problems holds one line per schema violation.
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("invalid config: %s", e.Problems[0])
	}
	return fmt.Sprintf("invalid config: %d problems, first: %s", len(e.Problems), e.Problems[0])
}

// Validate checks cfg against the embedded #Config schema.
func Validate(cfg *Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	val := ctx.Encode(cfg)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := def.Unify(val).Validate(cue.Concrete(true)); err != nil {
		var problems []string
		for _, e := range cueerrors.Errors(err) {
			problems = append(problems, e.Error())
		}
		if len(problems) == 0 {
			problems = []string{err.Error()}
		}
		return &ValidationError{Problems: problems}
	}
	return nil
}
