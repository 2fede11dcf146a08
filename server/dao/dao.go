// Package dao provides data access objects for use in the Elops analysis
// server.
package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Analysis is one stored grammar analysis: the submitted grammar text, the
// LL(1) verdict, and the rendered HTML artifact.
type Analysis struct {
	// ID is the record's unique id, assigned by the repository at creation.
	ID uuid.UUID

	// Created is when the analysis was performed, assigned by the repository
	// at creation.
	Created time.Time

	// Grammar is the grammar text as submitted.
	Grammar string

	// IsLL1 is whether the grammar was found to be LL(1).
	IsLL1 bool

	// Conflict is the id of the first conflicting production, or -1 when the
	// grammar is LL(1).
	Conflict int

	// HTML is the rendered report.
	HTML string
}

// AnalysisRepository stores and retrieves analysis records.
type AnalysisRepository interface {
	// Create stores a new Analysis. The ID and Created fields are assigned
	// by the repository; values in the provided record are ignored.
	Create(ctx context.Context, a Analysis) (Analysis, error)

	// GetByID retrieves the Analysis with the given id. Returns an error
	// matching elerrors.ErrNotFound if no such record exists.
	GetByID(ctx context.Context, id uuid.UUID) (Analysis, error)

	// GetAll retrieves every stored Analysis, oldest first.
	GetAll(ctx context.Context) ([]Analysis, error)

	// Delete removes the Analysis with the given id and returns it. Returns
	// an error matching elerrors.ErrNotFound if no such record exists.
	Delete(ctx context.Context, id uuid.UUID) (Analysis, error)
}

// Store holds all the repositories.
type Store interface {
	Analyses() AnalysisRepository

	// Close releases any resources held by the store.
	Close() error
}
