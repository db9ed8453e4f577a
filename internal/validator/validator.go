package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arcanaland/konamimap/internal/card"
	"github.com/arcanaland/konamimap/internal/extract"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
	Stats    Stats
}

// Stats summarises a set of extracted records
type Stats struct {
	Cards          int
	WithKonamiID   int
	Sentinels      int
	NegativeIDs    int // records whose candidates include a negative ID
	MultipleIDs    int // records with more than one konami_id candidate
	DuplicateIDs   int // KONAMI IDs shared by more than one card
	UniqueKonamiID int
}

type Validator struct {
	Records []extract.Record
	Options extract.Options
	Results ValidationResults

	invalid int // records whose KONAMI ID could not be read
}

func NewValidator(records []extract.Record, opts extract.Options) *Validator {
	return &Validator{
		Records: records,
		Options: opts,
		Results: ValidationResults{},
	}
}

func (v *Validator) Validate() ValidationResults {
	v.validateNames()
	v.validateCandidates()
	v.validateDuplicates()

	v.Results.Stats.Cards = len(v.Records)
	v.Results.Stats.WithKonamiID = v.Results.Stats.Cards - v.Results.Stats.Sentinels - v.invalid

	if v.Results.Stats.Sentinels > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%d cards have no KONAMI ID and will be commented out", v.Results.Stats.Sentinels))
	}

	return v.Results
}

// validateNames checks that every card has a usable name
func (v *Validator) validateNames() {
	for i, r := range v.Records {
		if strings.TrimSpace(r.Name) == "" {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("card #%d has an empty name", i))
		}
	}
}

// validateCandidates counts sentinel fallbacks, negative and ambiguous IDs
func (v *Validator) validateCandidates() {
	for _, r := range v.Records {
		id, err := r.KonamiID(v.Options)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors, err.Error())
			v.invalid++
			continue
		}
		if id == card.SentinelID {
			v.Results.Stats.Sentinels++
		}

		for _, candidate := range r.CandidateIDs() {
			if candidate < 0 {
				v.Results.Stats.NegativeIDs++
				break
			}
		}

		if len(r.Candidates) > 1 {
			v.Results.Stats.MultipleIDs++
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s has %d konami_id entries, using %d", r.Name, len(r.Candidates), id))
		}
	}
}

// validateDuplicates reports KONAMI IDs used by more than one card
func (v *Validator) validateDuplicates() {
	byID := make(map[int][]string)
	for _, r := range v.Records {
		id, err := r.KonamiID(v.Options)
		if err != nil || id == card.SentinelID {
			continue
		}
		byID[id] = append(byID[id], r.Name)
	}

	v.Results.Stats.UniqueKonamiID = len(byID)

	ids := make([]int, 0, len(byID))
	for id, names := range byID {
		if len(names) > 1 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	for _, id := range ids {
		v.Results.Stats.DuplicateIDs++
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("KONAMI ID %d is shared by: %s", id, strings.Join(byID[id], ", ")))
	}
}
