// Package pipeline drives a single download → extract → render → write run.
package pipeline

import (
	"context"
	"time"

	"github.com/arcanaland/konamimap/internal/card"
	"github.com/arcanaland/konamimap/internal/extract"
	"github.com/arcanaland/konamimap/internal/render"
	"github.com/arcanaland/konamimap/internal/validator"
	"github.com/rs/zerolog"
)

// State is a step of a pipeline run
type State int

const (
	Idle State = iota
	Downloading
	Parsing
	Building
	Writing
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Downloading:
		return "downloading"
	case Parsing:
		return "parsing"
	case Building:
		return "building"
	case Writing:
		return "writing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher downloads the raw card database
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options configures a run
type Options struct {
	URL        string
	OutputPath string
	TableName  string
	Extract    extract.Options
}

// Result describes a successful run
type Result struct {
	Entries   int
	Sentinels int
	Bytes     int
	Path      string
	Elapsed   time.Duration
}

// Pipeline runs the generator once. It is not safe for concurrent use.
type Pipeline struct {
	fetcher Fetcher
	opts    Options
	log     zerolog.Logger
	state   State
}

func New(fetcher Fetcher, opts Options, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		opts:    opts,
		log:     log,
		state:   Idle,
	}
}

// State returns the step the pipeline is in, or ended in
func (p *Pipeline) State() State {
	return p.state
}

func (p *Pipeline) enter(s State) {
	p.state = s
	p.log.Debug().Stringer("state", s).Msg("pipeline state")
}

// Run downloads the card database and writes the mapping header. Any error
// leaves the pipeline Failed and is returned unlogged for the caller to
// report; the output file is only touched in the Writing step.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	result, err := p.run(ctx)
	if err != nil {
		step := p.state
		p.enter(Failed)
		p.log.Debug().Stringer("step", step).Msg("Generation failed")
		return Result{}, err
	}

	result.Elapsed = time.Since(start)
	p.enter(Done)
	p.log.Info().Msgf("Process took: %.3fs", result.Elapsed.Seconds())

	return result, nil
}

func (p *Pipeline) run(ctx context.Context) (Result, error) {
	p.enter(Downloading)
	p.log.Info().Str("url", p.opts.URL).Msg("Downloading card details...")
	body, err := p.fetcher.Fetch(ctx, p.opts.URL)
	if err != nil {
		return Result{}, err
	}
	p.log.Debug().Int("bytes", len(body)).Msg("Download finished")

	p.enter(Parsing)
	p.log.Info().Msg("Parsing card details...")
	records, err := extract.Decode(body)
	if err != nil {
		return Result{}, err
	}

	p.log.Info().Msg("Reading card ID mappings...")
	entries, err := extract.Extract(records, p.opts.Extract)
	if err != nil {
		return Result{}, err
	}
	p.report(records)

	p.log.Info().Msg("Sorting...")
	card.SortEntries(entries)

	p.enter(Building)
	p.log.Info().Msg("Building C++ header...")
	header := render.CppHeader(entries, p.opts.TableName)

	p.enter(Writing)
	p.log.Info().Str("path", p.opts.OutputPath).Msg("Writing C++ header...")
	if err := render.WriteFile(p.opts.OutputPath, header); err != nil {
		return Result{}, err
	}

	return Result{
		Entries:   len(entries),
		Sentinels: card.CountSentinels(entries),
		Bytes:     len(header),
		Path:      p.opts.OutputPath,
	}, nil
}

// report logs mapping diagnostics; they never fail the run
func (p *Pipeline) report(records []extract.Record) {
	results := validator.NewValidator(records, p.opts.Extract).Validate()

	p.log.Info().
		Int("cards", results.Stats.Cards).
		Int("with_konami_id", results.Stats.WithKonamiID).
		Int("without_konami_id", results.Stats.Sentinels).
		Int("duplicate_ids", results.Stats.DuplicateIDs).
		Msg("Card ID mappings read")

	for _, e := range results.Errors {
		p.log.Warn().Msg(e)
	}
	for _, w := range results.Warnings {
		p.log.Debug().Msg(w)
	}
}
