package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/record"
)

func TestFormatFrequencies(t *testing.T) {
	assert.Equal(t, "none", formatFrequencies(nil))
	assert.Equal(t, `" "=1 "a"=2 "b"=1`, formatFrequencies(map[string]int{"b": 1, "a": 2, " ": 1}))
}

func TestCountLabel(t *testing.T) {
	assert.Equal(t, "0 strings", countLabel(0))
	assert.Equal(t, "1 string", countLabel(1))
	assert.Equal(t, "12 strings", countLabel(12))
}

func TestListOutput_Empty(t *testing.T) {
	out := listOutput(filter.NewResult(nil, filter.Set{}))
	assert.Equal(t, "0 strings (filters: none)", out.String())
}

func TestRecordOutput_String(t *testing.T) {
	rec := record.StringRecord{ID: "id1", Value: "a b", CreatedAt: "2025-01-01T00:00:00.000000Z"}
	rec.Properties.Length = 3
	rec.Properties.WordCount = 2

	s := recordOutput(rec).String()
	assert.Contains(t, s, "value:             a b\n")
	assert.Contains(t, s, "word_count:        2\n")
	assert.Contains(t, s, "frequencies:       none\n")
	assert.Contains(t, s, "created_at:        2025-01-01T00:00:00.000000Z")
}
