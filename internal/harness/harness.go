package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/memstore"
	"github.com/roach88/stringvault/internal/nlquery"
	"github.com/roach88/stringvault/internal/record"
	"github.com/roach88/stringvault/internal/service"
	"github.com/roach88/stringvault/internal/testutil"
)

// Harness executes scenario steps against a service.
type Harness struct {
	svc *service.Service
	seq int64
}

// Run executes a scenario against a fresh in-memory store.
//
// Execution flow:
// 1. Create fresh store, service, and deterministic clock
// 2. Create setup values (any failure aborts the run)
// 3. Execute flow steps, checking expect clauses
// 4. Evaluate assertions against trace and final store contents
func Run(scenario *Scenario) (*Result, error) {
	st := memstore.New()
	defer st.Close()
	return RunWithStore(context.Background(), scenario, st)
}

// RunWithStore executes a scenario against st. The store should be empty;
// the caller owns it and closes it.
func RunWithStore(ctx context.Context, scenario *Scenario, st record.Store) (*Result, error) {
	svc := service.New(st,
		service.WithClock(testutil.NewDeterministicClock()),
		service.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	h := &Harness{svc: svc}

	for i, value := range scenario.Setup {
		if _, err := svc.Create(ctx, value); err != nil {
			return nil, fmt.Errorf("setup[%d] %q: %w", i, value, err)
		}
	}

	result := NewResult()
	for i, step := range scenario.Flow {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev := h.execute(ctx, step)
		result.AddTrace(ev)
		for _, msg := range checkExpect(i, step, ev) {
			result.AddError(msg)
		}
	}

	all, err := st.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list final state: %w", err)
	}
	for _, rec := range all {
		result.Final = append(result.Final, rec.Value)
	}

	actx := &AssertionContext{Service: svc, Ctx: ctx}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// execute runs one step and records what happened.
func (h *Harness) execute(ctx context.Context, step Step) TraceEvent {
	h.seq++
	ev := TraceEvent{Seq: h.seq, Op: step.Op}

	var err error
	switch step.Op {
	case OpCreate:
		ev.Input = step.Value
		_, err = h.svc.Create(ctx, step.Value)
	case OpGet:
		ev.Input = step.Value
		_, err = h.svc.Get(ctx, step.Value)
	case OpDelete:
		ev.Input = step.Value
		err = h.svc.Delete(ctx, step.Value)
	case OpList:
		set := step.Filters.Set()
		ev.Filters = set.String()
		var res filter.Result
		res, err = h.svc.List(ctx, set)
		if err == nil {
			setListing(&ev, res.Data)
		}
	case OpQuery:
		ev.Input = step.Query
		var res service.QueryResult
		res, err = h.svc.Query(ctx, step.Query)
		if err == nil {
			ev.Filters = res.InterpretedQuery.ParsedFilters.String()
			setListing(&ev, res.Data)
		}
	default:
		err = fmt.Errorf("unknown op %q", step.Op)
	}

	ev.Outcome = Classify(err)
	return ev
}

func setListing(ev *TraceEvent, recs []record.StringRecord) {
	n := len(recs)
	ev.Count = &n
	ev.Values = make([]string, 0, n)
	for _, r := range recs {
		ev.Values = append(ev.Values, r.Value)
	}
}

// Classify maps a service error to its outcome name.
func Classify(err error) string {
	var ve *filter.ValidationError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, service.ErrEmptyValue):
		return OutcomeEmptyValue
	case record.IsDuplicate(err):
		return OutcomeDuplicate
	case record.IsNotFound(err):
		return OutcomeNotFound
	case errors.Is(err, nlquery.ErrUnparsableQuery):
		return OutcomeUnparsable
	case errors.As(err, &ve):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// checkExpect compares an executed step against its expect clause.
func checkExpect(index int, step Step, ev TraceEvent) []string {
	if step.Expect == nil {
		return nil
	}
	var errs []string
	exp := step.Expect

	if ev.Outcome != exp.Outcome {
		errs = append(errs, fmt.Sprintf("flow[%d] %s: expected outcome %s, got %s",
			index, step.Op, exp.Outcome, ev.Outcome))
	}
	if exp.Count != nil {
		got := 0
		if ev.Count != nil {
			got = *ev.Count
		}
		if got != *exp.Count {
			errs = append(errs, fmt.Sprintf("flow[%d] %s: expected count %d, got %d",
				index, step.Op, *exp.Count, got))
		}
	}
	if exp.Values != nil && !slices.Equal(exp.Values, ev.Values) {
		errs = append(errs, fmt.Sprintf("flow[%d] %s: expected values %q, got %q",
			index, step.Op, exp.Values, ev.Values))
	}
	return errs
}
