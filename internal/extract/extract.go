// Package extract turns a YGOPRODeck cardinfo response into KONAMI ID mapping
// entries.
package extract

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/arcanaland/konamimap/internal/card"
	"github.com/goccy/go-json"
)

// Options controls which KONAMI IDs are accepted
type Options struct {
	// IncludeNegativeIDs keeps IDs the database flags as invalid (negative values).
	// When false such IDs are skipped and scanning continues.
	IncludeNegativeIDs bool
}

// Record is a card as read from the response: its name and the raw value of
// every konami_id found in its misc_info list, in order. Values are only
// converted when the first-match scan reaches them.
type Record struct {
	Name       string
	Candidates []json.RawMessage
}

var null = []byte("null")

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, null)
}

// Decode parses the response text into records. Keys are matched exactly.
// Malformed JSON, a missing "data" array or a card that is not an object
// wraps card.ErrParse; a card without a usable name wraps card.ErrSchema.
func Decode(data []byte) ([]Record, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", card.ErrParse, err)
	}

	rawData, ok := doc["data"]
	if !ok || isNull(rawData) {
		return nil, fmt.Errorf("%w: response has no \"data\" array", card.ErrParse)
	}

	var cards []json.RawMessage
	if err := json.Unmarshal(rawData, &cards); err != nil {
		return nil, fmt.Errorf("%w: \"data\" is not an array: %v", card.ErrParse, err)
	}

	records := make([]Record, 0, len(cards))
	for i, raw := range cards {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("%w: card #%d is not an object: %v", card.ErrParse, i, err)
		}

		record, err := decodeCard(fields)
		if err != nil {
			return nil, fmt.Errorf("card #%d: %w", i, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func decodeCard(fields map[string]json.RawMessage) (Record, error) {
	var record Record

	name, ok := fields["name"]
	if !ok || isNull(name) {
		return record, fmt.Errorf("%w: missing \"name\" field", card.ErrSchema)
	}
	if err := json.Unmarshal(name, &record.Name); err != nil {
		return record, fmt.Errorf("%w: \"name\" is not a string: %v", card.ErrSchema, err)
	}

	miscInfo, ok := fields["misc_info"]
	if !ok || isNull(miscInfo) {
		return record, nil
	}

	var infos []map[string]json.RawMessage
	if err := json.Unmarshal(miscInfo, &infos); err != nil {
		return record, fmt.Errorf("%w: %s: \"misc_info\" is not a list of objects: %v", card.ErrParse, record.Name, err)
	}

	for _, info := range infos {
		value, ok := info["konami_id"]
		if !ok || isNull(value) {
			continue
		}
		record.Candidates = append(record.Candidates, value)
	}

	return record, nil
}

// parseID converts a konami_id value. Integral floats such as 5.0 are accepted.
func parseID(raw json.RawMessage) (int, error) {
	text := string(bytes.TrimSpace(raw))

	if id, err := strconv.Atoi(text); err == nil {
		return id, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("konami_id %s is not an integer", text)
	}
	return int(f), nil
}

// KonamiID scans the candidates in order and returns the first acceptable
// KONAMI ID, or card.SentinelID when there is none. Only candidates the scan
// reaches are converted; a malformed one wraps card.ErrSchema.
func (r Record) KonamiID(opts Options) (int, error) {
	for _, raw := range r.Candidates {
		id, err := parseID(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", card.ErrSchema, r.Name, err)
		}
		if id < 0 && !opts.IncludeNegativeIDs {
			continue
		}
		return id, nil
	}
	return card.SentinelID, nil
}

// CandidateIDs converts every candidate that is a valid integer, skipping
// the rest
func (r Record) CandidateIDs() []int {
	ids := make([]int, 0, len(r.Candidates))
	for _, raw := range r.Candidates {
		if id, err := parseID(raw); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// Extract produces one entry per record, in record order
func Extract(records []Record, opts Options) ([]card.Entry, error) {
	entries := make([]card.Entry, 0, len(records))
	for i, r := range records {
		id, err := r.KonamiID(opts)
		if err != nil {
			return nil, fmt.Errorf("card #%d: %w", i, err)
		}
		entries = append(entries, card.Entry{ID: id, Name: r.Name})
	}
	return entries, nil
}

// Entries decodes the response text and extracts its mapping entries
func Entries(data []byte, opts Options) ([]card.Entry, error) {
	records, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Extract(records, opts)
}
