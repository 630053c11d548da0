// Package service implements the string analysis flows on top of a
// record.Store.
//
// The service owns normalization and timestamping. It never retries; store,
// validation and translation errors are returned unchanged (possibly wrapped)
// so callers can classify them with record.IsDuplicate, record.IsNotFound,
// errors.As(*filter.ValidationError) and errors.Is(nlquery.ErrUnparsableQuery).
package service
