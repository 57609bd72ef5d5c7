// Package repository is the data-access boundary for the profiles table.
package repository

import (
	"context"
	"errors"

	"PROFILEHUB_BACK-END/internal/models"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("profile not found")

	// ErrDuplicateEmail is returned when a write would violate the email
	// uniqueness constraint.
	ErrDuplicateEmail = errors.New("email already exists")
)

// ListResult is one page of profiles plus the unpaginated total.
type ListResult struct {
	Items []models.Profile
	Total int
}

// ProfileRepository is the CRUD contract over the profiles table. All
// implementations must distinguish a unique-email violation from other
// storage failures.
type ProfileRepository interface {
	// Create inserts a profile; the store assigns id and created_at.
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)

	// GetByID fetches one profile or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Profile, error)

	// GetRecent fetches the profile with the highest id, or ErrNotFound when
	// the table is empty.
	GetRecent(ctx context.Context) (*models.Profile, error)

	// List returns one page ordered by id descending. Non-positive page or
	// pageSize fall back to 1 and 10.
	List(ctx context.Context, page, pageSize int) (*ListResult, error)

	// Update replaces every mutable field of the row, returns ErrNotFound if
	// the id does not exist.
	Update(ctx context.Context, id int64, p *models.Profile) (*models.Profile, error)

	// Delete removes the row and returns its prior state, or ErrNotFound.
	Delete(ctx context.Context, id int64) (*models.Profile, error)
}
