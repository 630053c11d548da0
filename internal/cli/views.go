package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/stringvault/internal/analysis"
	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/nlquery"
	"github.com/roach88/stringvault/internal/record"
	"github.com/roach88/stringvault/internal/service"
)

// The output types below keep the JSON shape of the values they wrap and add
// a String method for text output.

type analysisOutput struct {
	Value      string              `json:"value"`
	Properties analysis.Properties `json:"properties"`
}

func (o analysisOutput) String() string {
	var b strings.Builder
	field(&b, "value", o.Value)
	writeProperties(&b, o.Properties)
	return strings.TrimRight(b.String(), "\n")
}

type recordOutput record.StringRecord

func (o recordOutput) String() string {
	var b strings.Builder
	field(&b, "value", o.Value)
	field(&b, "id", o.ID)
	writeProperties(&b, o.Properties)
	field(&b, "created_at", o.CreatedAt)
	return strings.TrimRight(b.String(), "\n")
}

type deletedOutput struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

func (o deletedOutput) String() string {
	return fmt.Sprintf("deleted %q", o.Value)
}

type listOutput filter.Result

func (o listOutput) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (filters: %s)\n", countLabel(o.Count), o.FiltersApplied)
	writeValues(&b, o.Data)
	return strings.TrimRight(b.String(), "\n")
}

type queryOutput service.QueryResult

func (o queryOutput) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "query: %q\n", o.InterpretedQuery.Original)
	fmt.Fprintf(&b, "filters: %s\n", o.InterpretedQuery.ParsedFilters)
	fmt.Fprintf(&b, "%s\n", countLabel(o.Count))
	writeValues(&b, o.Data)
	return strings.TrimRight(b.String(), "\n")
}

type ruleOutput struct {
	Name   string `json:"name"`
	Phrase string `json:"phrase"`
	Effect string `json:"effect"`
}

type rulesOutput []ruleOutput

func newRulesOutput(rules []nlquery.Rule) rulesOutput {
	out := make(rulesOutput, 0, len(rules))
	for _, r := range rules {
		out = append(out, ruleOutput{Name: r.Name, Phrase: r.Phrase, Effect: r.Effect})
	}
	return out
}

func (o rulesOutput) String() string {
	var b strings.Builder
	for _, r := range o {
		fmt.Fprintf(&b, "%-18s %-24q %s\n", r.Name, r.Phrase, r.Effect)
	}
	return strings.TrimRight(b.String(), "\n")
}

func field(b *strings.Builder, label string, value any) {
	fmt.Fprintf(b, "%-18s %v\n", label+":", value)
}

func writeProperties(b *strings.Builder, p analysis.Properties) {
	field(b, "length", p.Length)
	field(b, "is_palindrome", p.IsPalindrome)
	field(b, "unique_characters", p.UniqueCharacters)
	field(b, "word_count", p.WordCount)
	field(b, "sha256_hash", p.ContentHash)
	field(b, "frequencies", formatFrequencies(p.CharacterFrequency))
}

// formatFrequencies renders the frequency map sorted by character.
func formatFrequencies(freq map[string]int) string {
	if len(freq) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(freq))
	for _, k := range slices.Sorted(maps.Keys(freq)) {
		parts = append(parts, fmt.Sprintf("%q=%d", k, freq[k]))
	}
	return strings.Join(parts, " ")
}

func writeValues(b *strings.Builder, recs []record.StringRecord) {
	for _, r := range recs {
		fmt.Fprintf(b, "  %q\n", r.Value)
	}
}

func countLabel(n int) string {
	if n == 1 {
		return "1 string"
	}
	return fmt.Sprintf("%d strings", n)
}
