package apply

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariana/jobpilot/internal/types"
)

type fakeStore struct {
	mu           sync.Mutex
	profile      *types.CandidateProfile
	postings     map[uuid.UUID]*types.JobPosting
	eligible     []types.JobPosting
	applications []*types.Application
	releases     int

	lastMinScore float64
	lastLimit    int

	profileErr  error
	postingErr  error
	eligibleErr error
	insertErr   error
	markErr     error
	markErrFor  uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		postings: make(map[uuid.UUID]*types.JobPosting),
		profile:  types.NewCandidateProfile("candidate resume text"),
	}
}

// addPosting registers a posting and snapshots it into the eligible set, in
// insertion order. Batch tests add postings best score first, matching the
// ordering the real store produces.
func (f *fakeStore) addPosting(posting *types.JobPosting) {
	f.postings[posting.ID] = posting
	f.eligible = append(f.eligible, *posting)
}

func (f *fakeStore) GetPosting(_ context.Context, id uuid.UUID) (*types.JobPosting, error) {
	if f.postingErr != nil {
		return nil, f.postingErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	posting, ok := f.postings[id]
	if !ok {
		return nil, nil
	}
	copied := *posting
	return &copied, nil
}

func (f *fakeStore) LatestProfile(_ context.Context) (*types.CandidateProfile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeStore) EligiblePostings(_ context.Context, minScore float64, limit int) ([]types.JobPosting, error) {
	if f.eligibleErr != nil {
		return nil, f.eligibleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastMinScore = minScore
	f.lastLimit = limit
	out := f.eligible
	if len(out) > limit {
		out = out[:limit]
	}
	return append([]types.JobPosting(nil), out...), nil
}

func (f *fakeStore) MarkApplied(_ context.Context, id uuid.UUID) (bool, error) {
	if f.markErr != nil && (f.markErrFor == uuid.Nil || f.markErrFor == id) {
		return false, f.markErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	posting, ok := f.postings[id]
	if !ok || posting.Applied {
		return false, nil
	}
	posting.Applied = true
	return true, nil
}

func (f *fakeStore) ReleaseApplied(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases++
	if posting, ok := f.postings[id]; ok {
		posting.Applied = false
	}
	return nil
}

func (f *fakeStore) InsertApplication(_ context.Context, application *types.Application) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applications = append(f.applications, application)
	return nil
}

type fakeLetters struct {
	letter string
}

func (f *fakeLetters) Generate(context.Context, *types.CandidateProfile, *types.JobPosting) string {
	return f.letter
}

func newTestPosting(title string, score float64) *types.JobPosting {
	return types.NewJobPosting(types.RawPosting{
		Title:        title,
		Company:      "Acme Corp",
		Location:     "Remote",
		Description:  "Build things",
		Requirements: "Go",
	}, score)
}

func TestApplyToJob_Success(t *testing.T) {
	store := newFakeStore()
	posting := newTestPosting("Backend Developer", 82)
	store.addPosting(posting)

	orch := NewOrchestrator(store, &fakeLetters{letter: "Dear Hiring Manager"})
	result, err := orch.ApplyToJob(context.Background(), posting.ID)
	require.NoError(t, err)

	assert.Equal(t, posting.ID, result.Application.JobID)
	assert.Equal(t, store.profile.ID, result.Application.ProfileID)
	assert.Equal(t, "Dear Hiring Manager", result.Application.CoverLetter)
	assert.Equal(t, types.StatusApplied, result.Application.Status)
	assert.True(t, result.Posting.Applied)

	require.Len(t, store.applications, 1)
	assert.True(t, store.postings[posting.ID].Applied)
}

func TestApplyToJob_PostingNotFound(t *testing.T) {
	store := newFakeStore()
	orch := NewOrchestrator(store, &fakeLetters{})

	_, err := orch.ApplyToJob(context.Background(), uuid.New())
	require.Error(t, err)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "job posting", notFound.Resource)
	assert.Empty(t, store.applications)
}

func TestApplyToJob_ProfileNotFound(t *testing.T) {
	store := newFakeStore()
	store.profile = nil
	posting := newTestPosting("Backend Developer", 82)
	store.addPosting(posting)

	orch := NewOrchestrator(store, &fakeLetters{})
	_, err := orch.ApplyToJob(context.Background(), posting.ID)
	require.Error(t, err)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "candidate profile", notFound.Resource)
	// The posting must not stay claimed when no profile exists.
	assert.False(t, store.postings[posting.ID].Applied)
}

func TestApplyToJob_AlreadyApplied(t *testing.T) {
	store := newFakeStore()
	posting := newTestPosting("Backend Developer", 82)
	posting.Applied = true
	store.addPosting(posting)

	orch := NewOrchestrator(store, &fakeLetters{})
	_, err := orch.ApplyToJob(context.Background(), posting.ID)
	assert.ErrorIs(t, err, ErrAlreadyApplied)
	assert.Empty(t, store.applications)
}

func TestApplyToJob_StoreErrorPropagates(t *testing.T) {
	store := newFakeStore()
	store.postingErr = errors.New("connection refused")

	orch := NewOrchestrator(store, &fakeLetters{})
	_, err := orch.ApplyToJob(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

// TestApplyToJob_PersistFailureReleasesClaim verifies the applied flag is
// returned to false when the application record cannot be stored, so the
// posting remains available for a later attempt.
func TestApplyToJob_PersistFailureReleasesClaim(t *testing.T) {
	store := newFakeStore()
	store.insertErr = errors.New("disk full")
	posting := newTestPosting("Backend Developer", 82)
	store.addPosting(posting)

	orch := NewOrchestrator(store, &fakeLetters{})
	_, err := orch.ApplyToJob(context.Background(), posting.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record application")

	assert.Equal(t, 1, store.releases)
	assert.False(t, store.postings[posting.ID].Applied)
	assert.Empty(t, store.applications)
}

// TestApplyToJob_ConcurrentAttemptsSingleWinner runs two applications for
// the same posting in parallel; exactly one may create an application.
func TestApplyToJob_ConcurrentAttemptsSingleWinner(t *testing.T) {
	store := newFakeStore()
	posting := newTestPosting("Backend Developer", 82)
	store.addPosting(posting)

	orch := NewOrchestrator(store, &fakeLetters{letter: "hello"})

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := orch.ApplyToJob(context.Background(), posting.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrAlreadyApplied):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, store.applications, 1)
}
