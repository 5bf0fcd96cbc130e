package storage

import (
	"context"

	"github.com/mcoot/forceteam/internal/model"
)

// Journal keeps a history of enforcement reports
type Journal interface {
	// Append records a report
	Append(ctx context.Context, r model.Report) error
	// List returns up to limit reports, newest first
	List(ctx context.Context, limit int) ([]model.Report, error)
}
