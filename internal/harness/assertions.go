package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/stringvault/internal/record"
	"github.com/roach88/stringvault/internal/service"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, ev := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %s -> %s\n", ev.Seq, ev.Op, describeInput(ev), ev.Outcome)
	}

	return buf.String()
}

func describeInput(ev TraceEvent) string {
	if ev.Op == OpList {
		return ev.Filters
	}
	return fmt.Sprintf("%q", ev.Input)
}

// AssertionContext provides the service for final-state assertions.
type AssertionContext struct {
	Service *service.Service
	Ctx     context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string

	for i, a := range assertions {
		var err error

		switch a.Type {
		case AssertFinalCount:
			err = assertFinalCount(result, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertFinalContains, AssertFinalAbsent:
			if actx == nil || actx.Service == nil {
				err = fmt.Errorf("assertion[%d]: %s requires a service", i, a.Type)
			} else {
				err = assertPresence(actx, result.Trace, a)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}

func assertFinalCount(result *Result, a Assertion) error {
	if len(result.Final) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalCount,
		Expected: fmt.Sprintf("%d stored strings", a.Count),
		Actual:   fmt.Sprintf("%d stored strings %q", len(result.Final), result.Final),
		Trace:    result.Trace,
	}
}

// assertTraceCount checks the op appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, ev := range trace {
		if ev.Op == a.Op {
			count++
		}
	}
	if count == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%d occurrences of %s", a.Count, a.Op),
		Actual:   fmt.Sprintf("%d occurrences", count),
		Trace:    trace,
	}
}

// assertPresence looks the value up by identity, so it sees what a client
// would see through get.
func assertPresence(actx *AssertionContext, trace []TraceEvent, a Assertion) error {
	ctx := actx.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	_, err := actx.Service.Get(ctx, a.Value)
	switch {
	case err == nil && a.Type == AssertFinalContains:
		return nil
	case record.IsNotFound(err) && a.Type == AssertFinalAbsent:
		return nil
	case err != nil && !record.IsNotFound(err):
		return fmt.Errorf("%s %q: %w", a.Type, a.Value, err)
	}

	want, got := "present", "absent"
	if a.Type == AssertFinalAbsent {
		want, got = "absent", "present"
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("%q %s", a.Value, want),
		Actual:   fmt.Sprintf("%q %s", a.Value, got),
		Trace:    trace,
	}
}
