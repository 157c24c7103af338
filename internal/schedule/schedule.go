// Package schedule keeps an events snapshot fresh on a cron schedule.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"jcal/internal/config"
	"jcal/internal/ics"
	appLog "jcal/internal/log"
)

// CollectFunc produces a fresh snapshot.
type CollectFunc func(ctx context.Context) (ics.Snapshot, error)

// ErrNoSnapshot is returned by Snapshot before the first successful run.
var ErrNoSnapshot = errors.New("no snapshot yet")

// Refresher runs a CollectFunc on a cron schedule and keeps the last good
// snapshot. A failed run keeps serving the previous snapshot.
type Refresher struct {
	spec    string
	loc     *time.Location
	collect CollectFunc

	mu      sync.RWMutex
	snap    ics.Snapshot
	have    bool
	lastErr error
	cron    *cron.Cron
}

// New validates spec (standard five-field cron or a descriptor such as
// "@hourly") and returns an idle Refresher.
func New(spec string, loc *time.Location, collect CollectFunc) (*Refresher, error) {
	if collect == nil {
		return nil, errors.New("schedule: collect func is nil")
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("schedule: %q: %w", spec, err)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Refresher{spec: spec, loc: loc, collect: collect}, nil
}

// Start runs one refresh synchronously, then schedules the rest. The
// schedule stops when ctx is done or Stop is called.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.cron != nil {
		r.mu.Unlock()
		return errors.New("schedule: already started")
	}
	logger := cronLogger{}
	c := cron.New(
		cron.WithLocation(r.loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(r.spec, func() { _ = r.RunOnce(ctx) }); err != nil {
		r.mu.Unlock()
		return err
	}
	r.cron = c
	r.mu.Unlock()

	if err := r.RunOnce(ctx); err != nil {
		appLog.Error("initial refresh failed", err)
	}

	c.Start()
	appLog.Info("refresh scheduled", "spec", r.spec, "timezone", r.loc.String(), "next", r.Next())

	go func() {
		<-ctx.Done()
		r.Stop()
	}()
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
	appLog.Info("refresh stopped")
}

// Next reports the next scheduled run, zero when not started.
func (r *Refresher) Next() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cron == nil {
		return time.Time{}
	}
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// RunOnce collects immediately and stores the result.
func (r *Refresher) RunOnce(ctx context.Context) error {
	snap, err := r.collect(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastErr = err
	if err != nil {
		return err
	}
	r.snap = snap
	r.have = true
	return nil
}

// Snapshot returns the last good snapshot. When none exists yet it returns
// the last run's error, or ErrNoSnapshot.
func (r *Refresher) Snapshot() (ics.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.have {
		if r.lastErr != nil {
			return ics.Snapshot{}, r.lastErr
		}
		return ics.Snapshot{}, ErrNoSnapshot
	}
	return r.snap, nil
}

// FromConfig builds the CollectFunc for cfg: every configured feed, expanded
// from the start of yesterday through HorizonDays ahead in cfg's timezone.
func FromConfig(cfg *config.Config, f *ics.Fetcher, now func() time.Time) CollectFunc {
	if now == nil {
		now = time.Now
	}
	sources := ics.SourcesFromConfig(cfg.ICS)
	loc := cfg.Location()

	return func(ctx context.Context) (ics.Snapshot, error) {
		start, end := Window(now().In(loc), cfg.HorizonDays)
		return ics.Collect(ctx, f, sources, ics.CollectConfig{
			Expand: ics.ExpandConfig{
				DisplayLocation: loc,
				RangeStart:      start,
				RangeEnd:        end,
			},
			Annotate: ics.AnnotateConfig{
				Calendar:      cfg.Kind(),
				Layout:        cfg.DateFormat,
				OneBasedClock: cfg.OneBasedClock,
				Location:      loc,
			},
		})
	}
}

// Window returns [start of the day before now, start of the day horizon
// days after now) in now's location.
func Window(now time.Time, horizon int) (time.Time, time.Time) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -1), today.AddDate(0, 0, horizon+1)
}

// cronLogger routes cron's own logging into the application log.
type cronLogger struct{}

func (cronLogger) Info(msg string, kv ...interface{}) {
	appLog.Debug("cron: "+msg, kv...)
}

func (cronLogger) Error(err error, msg string, kv ...interface{}) {
	appLog.Error("cron: "+msg, err, kv...)
}
