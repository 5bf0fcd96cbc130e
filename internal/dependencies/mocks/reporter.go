package mocks

import (
	"sync"

	"github.com/mcoot/forceteam/internal/model"
)

// MockReporter records every report it receives
type MockReporter struct {
	mu      sync.Mutex
	reports []model.Report
}

// NewMockReporter creates an empty MockReporter
func NewMockReporter() *MockReporter {
	return &MockReporter{}
}

// Report records r
func (m *MockReporter) Report(r model.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, r)
}

// Reports returns a copy of everything recorded so far
func (m *MockReporter) Reports() []model.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Report, len(m.reports))
	copy(out, m.reports)
	return out
}

// OfKind returns the recorded reports with the given kind
func (m *MockReporter) OfKind(kind model.ReportKind) []model.Report {
	var out []model.Report
	for _, r := range m.Reports() {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// Last returns the most recent report, or false if none
func (m *MockReporter) Last() (model.Report, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.reports) == 0 {
		return model.Report{}, false
	}
	return m.reports[len(m.reports)-1], true
}

// Reset discards all recorded reports
func (m *MockReporter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = nil
}
