// Package service orchestrates profile submissions: local field validation,
// remote email verification, then persistence. A submission that fails any
// earlier stage never reaches the repository.
package service

import (
	"context"
	"errors"
	"time"

	"PROFILEHUB_BACK-END/internal/dto"
	"PROFILEHUB_BACK-END/internal/mailcheck"
	"PROFILEHUB_BACK-END/internal/models"
	"PROFILEHUB_BACK-END/internal/repository"
	"PROFILEHUB_BACK-END/internal/validation"
)

// ValidationError is a client-correctable rejection carrying the failing
// field and a user-facing message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// EmailVerifier abstracts the deliverability client.
type EmailVerifier interface {
	Verify(ctx context.Context, email string) (*mailcheck.Verdict, error)
}

// ProfileList is one page of profiles with the pagination envelope fields.
type ProfileList struct {
	Profiles    []models.Profile
	CurrentPage int
	TotalPages  int
	Total       int
	HasNext     bool
	HasPrev     bool
}

// ProfileService drives the submission flow and shields handlers from the
// repository.
type ProfileService struct {
	repo     repository.ProfileRepository
	verifier EmailVerifier
	clock    func() time.Time
}

// Option configures a ProfileService instance.
type Option func(*ProfileService)

// WithClock sets the clock used for date-dependent validation.
func WithClock(clock func() time.Time) Option {
	return func(s *ProfileService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(repo repository.ProfileRepository, verifier EmailVerifier, opts ...Option) *ProfileService {
	s := &ProfileService{
		repo:     repo,
		verifier: verifier,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates and verifies the submission, then inserts it.
func (s *ProfileService) Create(ctx context.Context, req *dto.ProfileRequest) (*models.Profile, error) {
	p, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	if err := s.verifyEmail(ctx, p.Email); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

// Update applies the same validation and verification as Create, then
// replaces every mutable field of the row. Email re-verification is mandatory
// on the edit path too; the two flows differ only in the repository call.
func (s *ProfileService) Update(ctx context.Context, id int64, req *dto.ProfileRequest) (*models.Profile, error) {
	p, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	if err := s.verifyEmail(ctx, p.Email); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, p)
}

// Get fetches a profile by id.
func (s *ProfileService) Get(ctx context.Context, id int64) (*models.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// Recent fetches the most recently created profile, or nil when the table is
// empty.
func (s *ProfileService) Recent(ctx context.Context) (*models.Profile, error) {
	p, err := s.repo.GetRecent(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// List returns one page plus the computed pagination fields.
func (s *ProfileService) List(ctx context.Context, page, limit int) (*ProfileList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	res, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := (res.Total + limit - 1) / limit
	return &ProfileList{
		Profiles:    res.Items,
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       res.Total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}, nil
}

// Delete removes a profile and returns its prior state.
func (s *ProfileService) Delete(ctx context.Context, id int64) (*models.Profile, error) {
	return s.repo.Delete(ctx, id)
}

// validate runs the local field checks and the age/date cross-field rule.
// The returned profile carries the parsed date of birth.
func (s *ProfileService) validate(req *dto.ProfileRequest) (*models.Profile, error) {
	if req.Name == "" || req.Age == 0 || req.Email == "" || req.PhoneNumber == "" ||
		req.DateOfBirth == "" || req.Gender == "" {
		return nil, &ValidationError{Message: "All fields are required"}
	}

	now := s.clock()

	if res := validation.Name(req.Name); !res.Valid {
		return nil, &ValidationError{Field: "name", Message: res.Message}
	}
	if res := validation.AgeValue(req.Age); !res.Valid {
		return nil, &ValidationError{Field: "age", Message: res.Message}
	}
	if res := validation.Email(req.Email); !res.Valid {
		return nil, &ValidationError{Field: "email", Message: res.Message}
	}
	if res := validation.Phone(req.PhoneNumber); !res.Valid {
		return nil, &ValidationError{Field: "phone_number", Message: res.Message}
	}
	if res := validation.DateOfBirth(req.DateOfBirth, now); !res.Valid {
		return nil, &ValidationError{Field: "date_of_birth", Message: res.Message}
	}
	if res := validation.Gender(req.Gender); !res.Valid {
		return nil, &ValidationError{Field: "gender", Message: res.Message}
	}

	dob, err := validation.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, &ValidationError{Field: "date_of_birth", Message: "Date of birth must be a valid date"}
	}
	if res := validation.AgeDateAgreement(req.Age, dob, now); !res.Valid {
		return nil, &ValidationError{Field: "age", Message: res.Message}
	}

	return &models.Profile{
		Name:        req.Name,
		Age:         req.Age,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: dob,
		Gender:      req.Gender,
	}, nil
}

// verifyEmail runs the single remote deliverability check. Configuration and
// availability errors bubble up unchanged so the HTTP layer can report them
// as transient rather than as validation failures.
func (s *ProfileService) verifyEmail(ctx context.Context, email string) error {
	verdict, err := s.verifier.Verify(ctx, email)
	if err != nil {
		return err
	}
	if !verdict.Deliverable {
		return &ValidationError{
			Field:   "email",
			Message: "Email address is not deliverable: " + verdict.Reason,
		}
	}
	return nil
}
