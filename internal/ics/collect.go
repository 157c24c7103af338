package ics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"jcal/internal/config"
	appLog "jcal/internal/log"
	"jcal/internal/model"
)

// Snapshot is the result of one fetch, parse, expand and annotate pass.
type Snapshot struct {
	Occurrences []model.Occurrence `json:"occurrences"`
	Truncated   []string           `json:"truncated,omitempty"`
	Errors      []string           `json:"errors,omitempty"`
	RangeStart  time.Time          `json:"range_start"`
	RangeEnd    time.Time          `json:"range_end"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// CollectConfig drives Collect.
type CollectConfig struct {
	Expand   ExpandConfig
	Annotate AnnotateConfig
}

// SourcesFromConfig maps configured feeds to fetch sources. A feed is
// identified by its ID, then its name, then a short hash of its URL.
func SourcesFromConfig(feeds []config.ICSConfig) []Source {
	out := make([]Source, 0, len(feeds))
	for _, f := range feeds {
		if f.URL == "" {
			continue
		}
		id := f.ID
		if id == "" {
			id = f.Name
		}
		if id == "" {
			sum := sha256.Sum256([]byte(f.URL))
			id = "ics-" + hex.EncodeToString(sum[:4])
		}
		out = append(out, Source{ID: id, URL: f.URL})
	}
	return out
}

// Collect fetches every source and returns the annotated occurrences within
// the configured window. A source that fails to fetch or parse is reported in
// Snapshot.Errors and does not fail the pass.
func Collect(ctx context.Context, f *Fetcher, sources []Source, cfg CollectConfig) (Snapshot, error) {
	snap := Snapshot{
		RangeStart: cfg.Expand.RangeStart,
		RangeEnd:   cfg.Expand.RangeEnd,
	}

	results, fetchErrs := f.FetchAll(ctx, sources)
	for _, err := range fetchErrs {
		snap.Errors = append(snap.Errors, err.Error())
	}

	var events []ParsedEvent
	for _, res := range results {
		evs, err := ParseICS(res.Source, res.Body)
		if err != nil {
			appLog.Error("ics parse failed", err, "id", res.Source.ID)
			snap.Errors = append(snap.Errors, fmt.Sprintf("%s: %v", res.Source.ID, err))
			continue
		}
		events = append(events, evs...)
	}

	exp, err := ExpandOccurrences(events, cfg.Expand)
	if err != nil {
		return snap, err
	}
	snap.Occurrences = Annotate(exp.Occurrences, cfg.Annotate)
	snap.Truncated = exp.TruncatedEvents
	snap.UpdatedAt = time.Now()

	appLog.Info("ics collect completed",
		"sources", len(sources),
		"events", len(events),
		"occurrences", len(snap.Occurrences),
		"errors", len(snap.Errors),
	)
	return snap, nil
}
