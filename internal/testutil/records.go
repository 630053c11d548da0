package testutil

import (
	"github.com/roach88/stringvault/internal/analysis"
	"github.com/roach88/stringvault/internal/record"
)

// NewRecord analyzes value and builds its record with a timestamp from clock.
func NewRecord(clock *DeterministicClock, value string) record.StringRecord {
	v := analysis.Normalize(value)
	return record.New(v, analysis.Analyze(v), clock.Now())
}

// NewRecords builds one record per value, in order, from a fresh clock.
func NewRecords(values ...string) []record.StringRecord {
	clock := NewDeterministicClock()
	recs := make([]record.StringRecord, len(values))
	for i, v := range values {
		recs[i] = NewRecord(clock, v)
	}
	return recs
}

// SampleValues is a mixed corpus exercising every filter predicate.
var SampleValues = []string{
	"racecar",
	"hello world",
	"level",
	"pizza",
	"A man a plan a canal Panama",
	"zaz",
	"Was it a car or a cat I saw",
	"go",
	"noon",
	"straße",
	"été",
	"x",
}
