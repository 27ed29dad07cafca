package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/dwalbeck/job-tracker/internal/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// guardRecorder counts transaction outcomes across the fake driver so tests
// can assert the idempotency guard committed or rolled back.
type guardRecorder struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (r *guardRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits, r.rollbacks = 0, 0
}

func (r *guardRecorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commits, r.rollbacks
}

type guardDriver struct{ rec *guardRecorder }

func (d *guardDriver) Open(string) (driver.Conn, error) { return &guardConn{rec: d.rec}, nil }

type guardConn struct{ rec *guardRecorder }

func (c *guardConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not implemented") }
func (c *guardConn) Close() error                        { return nil }
func (c *guardConn) Begin() (driver.Tx, error)           { return &guardTx{rec: c.rec}, nil }

type guardTx struct{ rec *guardRecorder }

func (t *guardTx) Commit() error {
	t.rec.mu.Lock()
	defer t.rec.mu.Unlock()
	t.rec.commits++
	return nil
}

func (t *guardTx) Rollback() error {
	t.rec.mu.Lock()
	defer t.rec.mu.Unlock()
	t.rec.rollbacks++
	return nil
}

var guardRec = &guardRecorder{}

func init() {
	sql.Register("letter_guard_stub", &guardDriver{rec: guardRec})
}

func newGuardDB(t *testing.T) *sql.DB {
	t.Helper()
	guardRec.reset()
	db, err := sql.Open("letter_guard_stub", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// syncDispatcher runs the dispatched work inline instead of in a goroutine,
// so tests observe the worker's outcome deterministically.
type syncDispatcher struct {
	taskID      uuid.UUID
	dispatchErr error

	dispatched    bool
	lastOperation string
	lastHandler   string
	lastOwner     string
	workErr       error
}

func (d *syncDispatcher) Dispatch(
	ctx context.Context,
	operationName, handlerName, ownerName string,
	work task.WorkFunc,
) (uuid.UUID, error) {
	if d.dispatchErr != nil {
		return uuid.Nil, d.dispatchErr
	}
	d.dispatched = true
	d.lastOperation = operationName
	d.lastHandler = handlerName
	d.lastOwner = ownerName
	d.workErr = work(ctx, nil)
	return d.taskID, nil
}

type mockInvoker struct {
	response string
	err      error

	called           bool
	lastModelID      string
	lastSystemPrompt string
	lastUserPrompt   string
}

func (m *mockInvoker) Invoke(
	_ context.Context,
	modelID, systemPrompt, userPrompt string,
	_ time.Duration,
) (string, error) {
	m.called = true
	m.lastModelID = modelID
	m.lastSystemPrompt = systemPrompt
	m.lastUserPrompt = userPrompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type mockJobStore struct {
	job    *domain.Job
	getErr error
	create error

	created *domain.Job
}

func (m *mockJobStore) Create(_ context.Context, job *domain.Job) error {
	if m.create != nil {
		return m.create
	}
	m.created = job
	return nil
}

func (m *mockJobStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Job, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.job == nil || m.job.ID != id {
		return nil, store.ErrJobNotFound
	}
	return m.job, nil
}

type mockAnalysisStore struct {
	analysis  *domain.JobAnalysis
	getErr    error
	upsertErr error

	upserted *domain.JobAnalysis
}

func (m *mockAnalysisStore) Upsert(_ context.Context, analysis *domain.JobAnalysis) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = analysis
	return nil
}

func (m *mockAnalysisStore) GetByJobID(_ context.Context, jobID uuid.UUID) (*domain.JobAnalysis, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.analysis == nil || m.analysis.JobID != jobID {
		return nil, store.ErrAnalysisNotFound
	}
	return m.analysis, nil
}

type mockLetterStore struct {
	letter     *domain.CoverLetter
	getErr     error
	upsertErr  error
	updateErr  error

	upserted        *domain.CoverLetter
	updatedKeywords []string
}

func (m *mockLetterStore) Upsert(_ context.Context, letter *domain.CoverLetter) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = letter
	return nil
}

func (m *mockLetterStore) GetByJobAndTemplate(
	_ context.Context,
	jobID uuid.UUID,
	template string,
) (*domain.CoverLetter, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.letter == nil || m.letter.JobID != jobID || m.letter.Template != template {
		return nil, store.ErrLetterNotFound
	}
	return m.letter, nil
}

func (m *mockLetterStore) UpdateKeywords(
	_ context.Context,
	jobID uuid.UUID,
	template string,
	keywords []string,
) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedKeywords = keywords
	return nil
}
