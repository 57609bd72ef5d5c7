package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PROFILEHUB_BACK-END/internal/dto"
	"PROFILEHUB_BACK-END/internal/mailcheck"
	"PROFILEHUB_BACK-END/internal/models"
	"PROFILEHUB_BACK-END/internal/repository"
)

// fakeRepo is an in-memory ProfileRepository with the same uniqueness and
// not-found behavior as the Postgres implementation.
type fakeRepo struct {
	rows    map[int64]models.Profile
	nextID  int64
	creates int
	updates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]models.Profile{}, nextID: 1}
}

func (r *fakeRepo) emailTaken(email string, excludeID int64) bool {
	for id, row := range r.rows {
		if row.Email == email && id != excludeID {
			return true
		}
	}
	return false
}

func (r *fakeRepo) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	r.creates++
	if r.emailTaken(p.Email, 0) {
		return nil, repository.ErrDuplicateEmail
	}
	stored := *p
	stored.ID = r.nextID
	stored.CreatedAt = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	r.nextID++
	r.rows[stored.ID] = stored
	return &stored, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	row, found := r.rows[id]
	if !found {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (r *fakeRepo) GetRecent(ctx context.Context) (*models.Profile, error) {
	var recent *models.Profile
	for id := range r.rows {
		row := r.rows[id]
		if recent == nil || row.ID > recent.ID {
			recent = &row
		}
	}
	if recent == nil {
		return nil, repository.ErrNotFound
	}
	return recent, nil
}

func (r *fakeRepo) List(ctx context.Context, page, pageSize int) (*repository.ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	ids := make([]int64, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	offset := (page - 1) * pageSize
	items := []models.Profile{}
	for i := offset; i < len(ids) && i < offset+pageSize; i++ {
		items = append(items, r.rows[ids[i]])
	}
	return &repository.ListResult{Items: items, Total: len(ids)}, nil
}

func (r *fakeRepo) Update(ctx context.Context, id int64, p *models.Profile) (*models.Profile, error) {
	r.updates++
	prior, found := r.rows[id]
	if !found {
		return nil, repository.ErrNotFound
	}
	if r.emailTaken(p.Email, id) {
		return nil, repository.ErrDuplicateEmail
	}
	updated := *p
	updated.ID = id
	updated.CreatedAt = prior.CreatedAt
	r.rows[id] = updated
	return &updated, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) (*models.Profile, error) {
	row, found := r.rows[id]
	if !found {
		return nil, repository.ErrNotFound
	}
	delete(r.rows, id)
	return &row, nil
}

// fakeVerifier returns a scripted verdict or error and counts calls.
type fakeVerifier struct {
	verdict *mailcheck.Verdict
	err     error
	calls   int
}

func (v *fakeVerifier) Verify(ctx context.Context, email string) (*mailcheck.Verdict, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	return v.verdict, nil
}

func deliverable() *mailcheck.Verdict {
	return &mailcheck.Verdict{
		FormatValid: true,
		MXFound:     true,
		SMTPCheck:   true,
		Score:       0.96,
		Deliverable: true,
		Reason:      "Valid",
	}
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	}
}

func validRequest() *dto.ProfileRequest {
	return &dto.ProfileRequest{
		Name:        "Ann Lee",
		Age:         30,
		Email:       "ann@example.com",
		PhoneNumber: "1234567890",
		DateOfBirth: "1994-01-01",
		Gender:      models.GenderFemale,
	}
}

func newService(repo *fakeRepo, verifier *fakeVerifier) *ProfileService {
	return NewProfileService(repo, verifier, WithClock(fixedClock()))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid submission is persisted", func(t *testing.T) {
		repo := newFakeRepo()
		verifier := &fakeVerifier{verdict: deliverable()}
		svc := newService(repo, verifier)

		created, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, "Ann Lee", created.Name)
		assert.Equal(t, 30, created.Age)
		assert.Equal(t, 1, verifier.calls)

		// Round-trip: fetching by the returned id yields the same fields.
		fetched, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, fetched)
	})

	t.Run("missing fields reject before any collaborator call", func(t *testing.T) {
		repo := newFakeRepo()
		verifier := &fakeVerifier{verdict: deliverable()}
		svc := newService(repo, verifier)

		req := validRequest()
		req.Email = ""
		_, err := svc.Create(ctx, req)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "All fields are required", vErr.Message)
		assert.Zero(t, verifier.calls)
		assert.Zero(t, repo.creates)
	})

	t.Run("field failure rejects without persistence", func(t *testing.T) {
		repo := newFakeRepo()
		verifier := &fakeVerifier{verdict: deliverable()}
		svc := newService(repo, verifier)

		req := validRequest()
		req.PhoneNumber = "12345"
		_, err := svc.Create(ctx, req)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "phone_number", vErr.Field)
		assert.Zero(t, verifier.calls)
		assert.Zero(t, repo.creates)
	})

	t.Run("age and date of birth must agree", func(t *testing.T) {
		repo := newFakeRepo()
		verifier := &fakeVerifier{verdict: deliverable()}
		svc := newService(repo, verifier)

		req := validRequest()
		req.Age = 29 // computed age at the fixed clock is 30
		_, err := svc.Create(ctx, req)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "age", vErr.Field)
		assert.Zero(t, repo.creates)
	})

	t.Run("negative verdict rejects without persistence", func(t *testing.T) {
		repo := newFakeRepo()
		verifier := &fakeVerifier{verdict: &mailcheck.Verdict{
			FormatValid: true,
			MXFound:     true,
			SMTPCheck:   true,
			Score:       0.59,
			Deliverable: false,
			Reason:      "Low quality score",
		}}
		svc := newService(repo, verifier)

		_, err := svc.Create(ctx, validRequest())

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, "Low quality score")
		assert.Zero(t, repo.creates)
	})

	t.Run("verifier outage surfaces as transient error", func(t *testing.T) {
		repo := newFakeRepo()
		verifier := &fakeVerifier{err: fmt.Errorf("%w: timeout", mailcheck.ErrServiceUnavailable)}
		svc := newService(repo, verifier)

		_, err := svc.Create(ctx, validRequest())
		assert.ErrorIs(t, err, mailcheck.ErrServiceUnavailable)
		assert.Zero(t, repo.creates)
	})

	t.Run("duplicate email maps to the repository sentinel", func(t *testing.T) {
		repo := newFakeRepo()
		verifier := &fakeVerifier{verdict: deliverable()}
		svc := newService(repo, verifier)

		_, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)

		dup := validRequest()
		dup.PhoneNumber = "0987654321"
		_, err = svc.Create(ctx, dup)
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid update replaces mutable fields", func(t *testing.T) {
		repo := newFakeRepo()
		verifier := &fakeVerifier{verdict: deliverable()}
		svc := newService(repo, verifier)

		created, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)

		req := validRequest()
		req.Name = "Ann B Lee"
		updated, err := svc.Update(ctx, created.ID, req)
		require.NoError(t, err)
		assert.Equal(t, "Ann B Lee", updated.Name)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt, "created_at is immutable")
	})

	t.Run("email is re-verified on update", func(t *testing.T) {
		repo := newFakeRepo()
		verifier := &fakeVerifier{verdict: deliverable()}
		svc := newService(repo, verifier)

		created, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)
		require.Equal(t, 1, verifier.calls)

		_, err = svc.Update(ctx, created.ID, validRequest())
		require.NoError(t, err)
		assert.Equal(t, 2, verifier.calls)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		svc := newService(newFakeRepo(), &fakeVerifier{verdict: deliverable()})
		_, err := svc.Update(ctx, 999, validRequest())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, svc *ProfileService, n int) {
		t.Helper()
		for i := 0; i < n; i++ {
			req := validRequest()
			req.Email = fmt.Sprintf("user%02d@example.com", i)
			_, err := svc.Create(ctx, req)
			require.NoError(t, err)
		}
	}

	t.Run("23 rows at limit 10 paginate into 3 pages", func(t *testing.T) {
		svc := newService(newFakeRepo(), &fakeVerifier{verdict: deliverable()})
		seed(t, svc, 23)

		page1, err := svc.List(ctx, 1, 10)
		require.NoError(t, err)
		assert.Len(t, page1.Profiles, 10)
		assert.Equal(t, 3, page1.TotalPages)
		assert.Equal(t, 23, page1.Total)
		assert.True(t, page1.HasNext)
		assert.False(t, page1.HasPrev)
		assert.Equal(t, int64(23), page1.Profiles[0].ID, "ordered by id descending")

		page3, err := svc.List(ctx, 3, 10)
		require.NoError(t, err)
		assert.Len(t, page3.Profiles, 3)
		assert.False(t, page3.HasNext)
		assert.True(t, page3.HasPrev)
		assert.Equal(t, int64(3), page3.Profiles[0].ID)
		assert.Equal(t, int64(1), page3.Profiles[2].ID)
	})

	t.Run("junk page and limit fall back to defaults", func(t *testing.T) {
		svc := newService(newFakeRepo(), &fakeVerifier{verdict: deliverable()})
		seed(t, svc, 12)

		res, err := svc.List(ctx, 0, -3)
		require.NoError(t, err)
		assert.Equal(t, 1, res.CurrentPage)
		assert.Len(t, res.Profiles, 10)
		assert.Equal(t, 2, res.TotalPages)
	})

	t.Run("empty table yields an empty page", func(t *testing.T) {
		svc := newService(newFakeRepo(), &fakeVerifier{verdict: deliverable()})

		res, err := svc.List(ctx, 1, 10)
		require.NoError(t, err)
		assert.Empty(t, res.Profiles)
		assert.NotNil(t, res.Profiles, "must encode as [] not null")
		assert.Zero(t, res.TotalPages)
		assert.False(t, res.HasNext)
		assert.False(t, res.HasPrev)
	})
}

func TestRecentAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("recent is nil on an empty table", func(t *testing.T) {
		svc := newService(newFakeRepo(), &fakeVerifier{verdict: deliverable()})
		p, err := svc.Recent(ctx)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("recent returns the highest id", func(t *testing.T) {
		svc := newService(newFakeRepo(), &fakeVerifier{verdict: deliverable()})
		_, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)
		second := validRequest()
		second.Email = "ben@example.com"
		created, err := svc.Create(ctx, second)
		require.NoError(t, err)

		p, err := svc.Recent(ctx)
		require.NoError(t, err)
		assert.Equal(t, created.ID, p.ID)
	})

	t.Run("delete returns the prior state", func(t *testing.T) {
		svc := newService(newFakeRepo(), &fakeVerifier{verdict: deliverable()})
		created, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)

		deleted, err := svc.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Email, deleted.Email)

		_, err = svc.Get(ctx, created.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("deleting an unknown id is not found on every call", func(t *testing.T) {
		svc := newService(newFakeRepo(), &fakeVerifier{verdict: deliverable()})
		for i := 0; i < 3; i++ {
			_, err := svc.Delete(ctx, 42)
			assert.ErrorIs(t, err, repository.ErrNotFound)
		}
	})
}
