package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/stringvault/internal/analysis"
	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/nlquery"
	"github.com/roach88/stringvault/internal/record"
)

// ErrEmptyValue is returned by Create when the value is empty after trimming.
var ErrEmptyValue = errors.New("missing or empty value")

// Matcher is implemented by stores that evaluate a filter.Set themselves.
// Results must equal filter.FilterAll over ListAll.
type Matcher interface {
	ListMatching(ctx context.Context, set filter.Set) ([]record.StringRecord, error)
}

// QueryResult is the outcome of a natural-language query.
type QueryResult struct {
	Data             []record.StringRecord  `json:"data"`
	Count            int                    `json:"count"`
	InterpretedQuery nlquery.Interpretation `json:"interpreted_query"`
}

// Service runs the analysis flows against a store.
// Thread-safety: safe for concurrent use if the store is.
type Service struct {
	store  record.Store
	clock  Clock
	logger *slog.Logger
}

// New creates a service over store.
func New(store record.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		clock:  SystemClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create analyzes value and stores it under its identity.
// The stored value is the trimmed value. Returns ErrEmptyValue for empty
// input and a duplicate-identity store error if the value already exists.
func (s *Service) Create(ctx context.Context, value string) (record.StringRecord, error) {
	v := analysis.Normalize(value)
	if v == "" {
		return record.StringRecord{}, ErrEmptyValue
	}

	rec := record.New(v, analysis.Analyze(v), s.clock.Now())
	if err := s.store.Put(ctx, rec); err != nil {
		if record.IsDuplicate(err) {
			s.logger.Debug("string already exists", "id", rec.ID)
		}
		return record.StringRecord{}, fmt.Errorf("create: %w", err)
	}

	s.logger.Info("string created",
		"id", rec.ID,
		"length", rec.Properties.Length,
		"is_palindrome", rec.Properties.IsPalindrome,
	)
	return rec, nil
}

// Get looks value up by identity.
func (s *Service) Get(ctx context.Context, value string) (record.StringRecord, error) {
	rec, err := s.store.Get(ctx, analysis.IdentityOf(value))
	if err != nil {
		return record.StringRecord{}, fmt.Errorf("get: %w", err)
	}
	return rec, nil
}

// Delete removes the record for value.
func (s *Service) Delete(ctx context.Context, value string) error {
	id := analysis.IdentityOf(value)
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	s.logger.Info("string deleted", "id", id)
	return nil
}

// List validates set and returns the matching records in insertion order.
func (s *Service) List(ctx context.Context, set filter.Set) (filter.Result, error) {
	if err := set.Validate(); err != nil {
		return filter.Result{}, err
	}
	return s.list(ctx, set)
}

// Query translates text into a filter set and lists with it.
// The translated set is not validated.
func (s *Service) Query(ctx context.Context, text string) (QueryResult, error) {
	interp, err := nlquery.Interpret(text)
	if err != nil {
		s.logger.Debug("query not understood", "query", text)
		return QueryResult{}, err
	}

	res, err := s.list(ctx, interp.ParsedFilters)
	if err != nil {
		return QueryResult{}, err
	}

	s.logger.Debug("query interpreted",
		"query", text,
		"filters", interp.ParsedFilters.String(),
		"count", res.Count,
	)
	return QueryResult{
		Data:             res.Data,
		Count:            res.Count,
		InterpretedQuery: interp,
	}, nil
}

func (s *Service) list(ctx context.Context, set filter.Set) (filter.Result, error) {
	if m, ok := s.store.(Matcher); ok {
		recs, err := m.ListMatching(ctx, set)
		if err != nil {
			return filter.Result{}, fmt.Errorf("list: %w", err)
		}
		return filter.NewResult(recs, set), nil
	}

	all, err := s.store.ListAll(ctx)
	if err != nil {
		return filter.Result{}, fmt.Errorf("list: %w", err)
	}
	return filter.FilterAll(all, set), nil
}
