package practice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocadrill/pkg/models"
)

func newTestService(store *fakeStore, words []models.Word) *Service {
	return NewService(42, store, NewMachine(words, models.Progress{Total: len(words), Done: 0}))
}

func TestServicePersistsEachAdvance(t *testing.T) {
	t.Parallel()

	store := &fakeStore{session: &models.PracticeSession{UserID: 42}}
	svc := newTestService(store, testQueue())

	require.Equal(t, OutcomeAdvanced, svc.Submit("cat"))

	assert.Equal(t, 1, store.updates)
	assert.Equal(t, models.Progress{Total: 2, Done: 1}, store.session.Progress)
	require.Len(t, store.session.Queue, 1)
	assert.Equal(t, "dog", store.session.Queue[0].English)
}

func TestServiceMismatchPersistsNothing(t *testing.T) {
	t.Parallel()

	store := &fakeStore{session: &models.PracticeSession{UserID: 42}}
	svc := newTestService(store, testQueue())

	require.Equal(t, OutcomeMismatch, svc.Submit("wrong"))

	assert.Zero(t, store.updates)
	assert.Zero(t, store.removes)
}

func TestServiceDeclareKnownPersistsNothing(t *testing.T) {
	t.Parallel()

	store := &fakeStore{session: &models.PracticeSession{UserID: 42}}
	svc := newTestService(store, testQueue())

	require.Equal(t, OutcomeRevealed, svc.DeclareKnown())

	assert.Zero(t, store.updates)
}

func TestServiceMarkWrongPersistsRotation(t *testing.T) {
	t.Parallel()

	store := &fakeStore{session: &models.PracticeSession{UserID: 42}}
	svc := newTestService(store, testQueue())

	svc.DeclareKnown()
	require.Equal(t, OutcomeRotated, svc.MarkWrong())

	assert.Equal(t, 1, store.updates)
	assert.Equal(t, 0, store.session.Progress.Done)
	require.Len(t, store.session.Queue, 2)
	assert.Equal(t, "dog", store.session.Queue[0].English)
	assert.Equal(t, "cat", store.session.Queue[1].English)
}

func TestServiceCompletionRemovesSession(t *testing.T) {
	t.Parallel()

	store := &fakeStore{session: &models.PracticeSession{UserID: 42}}
	svc := newTestService(store, []models.Word{{English: "cat", Translation: "кот"}})

	require.Equal(t, OutcomeCompleted, svc.Submit("cat"))

	assert.Equal(t, 1, store.removes)
	assert.Nil(t, store.session)
	assert.Equal(t, StatusCompleted, svc.State().Status)
}

func TestServiceKeepsLocalStateWhenPersistenceFails(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		session:   &models.PracticeSession{UserID: 42},
		updateErr: errors.New("connection refused"),
	}
	svc := newTestService(store, testQueue())

	// the transition is not rolled back; the local queue stays the
	// presented truth until reconciliation corrects it
	require.Equal(t, OutcomeAdvanced, svc.Submit("cat"))

	state := svc.State()
	assert.Equal(t, 1, state.Progress.Done)
	assert.Equal(t, StatusIdle, state.Status)
}
