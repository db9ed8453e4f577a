package validator

import (
	"testing"

	"github.com/arcanaland/konamimap/internal/extract"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func ids(values ...string) []json.RawMessage {
	raw := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		raw = append(raw, json.RawMessage(v))
	}
	return raw
}

func TestValidateStats(t *testing.T) {
	records := []extract.Record{
		{Name: "Card A", Candidates: ids("5")},
		{Name: "Card B", Candidates: ids("-3")},
		{Name: "Card C"},
		{Name: "Card D", Candidates: ids("5")},
		{Name: "Card E", Candidates: ids("-1", "9")},
	}

	results := NewValidator(records, extract.Options{}).Validate()

	assert.Empty(t, results.Errors)
	assert.Equal(t, Stats{
		Cards:          5,
		WithKonamiID:   3,
		Sentinels:      2,
		NegativeIDs:    2,
		MultipleIDs:    1,
		DuplicateIDs:   1,
		UniqueKonamiID: 2,
	}, results.Stats)

	assert.Contains(t, results.Warnings, "KONAMI ID 5 is shared by: Card A, Card D")
	assert.Contains(t, results.Warnings, "Card E has 2 konami_id entries, using 9")
	assert.Contains(t, results.Warnings, "2 cards have no KONAMI ID and will be commented out")
}

func TestValidateIncludeNegative(t *testing.T) {
	records := []extract.Record{{Name: "Card B", Candidates: ids("-3")}}

	results := NewValidator(records, extract.Options{IncludeNegativeIDs: true}).Validate()

	assert.Equal(t, 0, results.Stats.Sentinels)
	assert.Equal(t, 1, results.Stats.WithKonamiID)
	assert.Empty(t, results.Warnings)
}

func TestValidateMalformedIDAfterMatchIsIgnored(t *testing.T) {
	records := []extract.Record{{Name: "Card A", Candidates: ids("5", `"oops"`)}}

	results := NewValidator(records, extract.Options{}).Validate()

	assert.Empty(t, results.Errors)
	assert.Equal(t, 1, results.Stats.MultipleIDs)
	assert.Contains(t, results.Warnings, "Card A has 2 konami_id entries, using 5")
}

func TestValidateMalformedIDReached(t *testing.T) {
	records := []extract.Record{{Name: "Card A", Candidates: ids(`"oops"`)}, {Name: "Card B", Candidates: ids("7")}}

	results := NewValidator(records, extract.Options{}).Validate()

	assert.Len(t, results.Errors, 1)
	assert.Contains(t, results.Errors[0], "Card A")
	assert.Equal(t, 1, results.Stats.WithKonamiID)
	assert.Equal(t, 0, results.Stats.Sentinels)
}

func TestValidateEmptyName(t *testing.T) {
	results := NewValidator([]extract.Record{{Name: "  ", Candidates: ids("1")}}, extract.Options{}).Validate()
	assert.Equal(t, []string{"card #0 has an empty name"}, results.Errors)
}
