package factory

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/forceteam/internal/dependencies/mocks"
	"github.com/mcoot/forceteam/internal/model"
	"github.com/mcoot/forceteam/internal/services/auth"
	"github.com/mcoot/forceteam/internal/services/report"
	"github.com/mcoot/forceteam/internal/sse"
	"github.com/mcoot/forceteam/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Store     *memory.Storage
}

// NewTestApp creates an App with a mock clock whose loop is stepped by hand.
// Reports are written to the journal synchronously so tests can read them
// back straight after a step.
func NewTestApp() *TestApp {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := memory.New(0)
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	authService, err := auth.New(mockClock, auth.DefaultConfig())
	if err != nil {
		panic(err)
	}
	hub := sse.NewHub(logger)

	reporter := report.Fanout{
		report.Func(func(r model.Report) {
			_ = store.Append(context.Background(), r)
		}),
		sse.NewBroadcaster(hub, logger),
	}

	app := newWithDependencies(mockClock, 10*time.Millisecond, nil, reporter, logger)
	app.Journal = store
	app.AuthService = authService
	app.Hub = hub
	app.closers = []func(){hub.Close}

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Store:     store,
	}
}

// Advance moves the clock forward one loop interval at a time, stepping the
// loop after each move
func (t *TestApp) Advance(d time.Duration) {
	interval := t.Loop.Interval()
	for elapsed := time.Duration(0); elapsed < d; elapsed += interval {
		t.MockClock.Advance(interval)
		t.Loop.Step()
	}
}

// Steps runs n loop steps without moving the clock
func (t *TestApp) Steps(n int) {
	for range n {
		t.Loop.Step()
	}
}

// Reports returns journalled reports, oldest first
func (t *TestApp) Reports() []model.Report {
	reports, _ := t.Store.List(context.Background(), 0)
	out := make([]model.Report, len(reports))
	for i, r := range reports {
		out[len(reports)-1-i] = r
	}
	return out
}

// ReportsOfKind returns journalled reports of one kind, oldest first
func (t *TestApp) ReportsOfKind(kind model.ReportKind) []model.Report {
	var out []model.Report
	for _, r := range t.Reports() {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
