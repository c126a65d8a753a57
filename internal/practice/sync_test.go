package practice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocadrill/pkg/models"
)

func authoritativeSession(done int, queue []models.Word) *models.PracticeSession {
	return &models.PracticeSession{
		UserID:   42,
		UnitIDs:  "1",
		Queue:    queue,
		Progress: models.Progress{Total: done + len(queue), Done: done},
	}
}

func TestReconcileAbsentSessionIsNoOp(t *testing.T) {
	t.Parallel()

	m := newTestMachine(testQueue())

	// another client may be mid-completion; local handling owns that exit
	assert.False(t, Reconcile(m, nil))
	assert.Len(t, m.Queue, 2)
}

func TestReconcileNeverInterruptsTransientStates(t *testing.T) {
	t.Parallel()

	ahead := authoritativeSession(5, wordSet(2))

	for _, prep := range []func(m *Machine){
		func(m *Machine) { m.Submit("wrong") },                // error
		func(m *Machine) { m.DeclareKnown() },                 // reviewing
		func(m *Machine) { m.DeclareKnown(); m.MarkWrong() },  // review_error
	} {
		m := newTestMachine(testQueue())
		prep(m)

		assert.False(t, Reconcile(m, ahead))
		assert.Equal(t, 0, m.Progress.Done)
	}
}

func TestReconcileTieIsNoOp(t *testing.T) {
	t.Parallel()

	m := newTestMachine(testQueue())
	same := authoritativeSession(0, wordSet(2))

	assert.False(t, Reconcile(m, same))
}

func TestReconcileNeverMovesBackwards(t *testing.T) {
	t.Parallel()

	m := newTestMachine(testQueue())
	m.Submit("cat") // done=1 locally

	behind := authoritativeSession(0, wordSet(2))

	assert.False(t, Reconcile(m, behind))
	assert.Equal(t, 1, m.Progress.Done)
}

func TestReconcileAdoptsStrictlyAheadState(t *testing.T) {
	t.Parallel()

	m := newTestMachine(testQueue())
	m.Feedback = "stale feedback"
	m.Status = StatusIdle

	ahead := authoritativeSession(4, []models.Word{{ID: 9, English: "bird", Translation: "птица"}})

	require.True(t, Reconcile(m, ahead))

	assert.Equal(t, StatusIdle, m.Status)
	assert.Equal(t, models.Progress{Total: 5, Done: 4}, m.Progress)
	require.Len(t, m.Queue, 1)
	assert.Equal(t, "bird", m.Queue[0].English)
	assert.Empty(t, m.Feedback)
	assert.Empty(t, m.Revealed)
}

// two tabs sharing one store: A confirms a word, B's next poll catches up
func TestTwoClientCatchUp(t *testing.T) {
	t.Parallel()

	queue := []models.Word{
		{ID: 1, English: "one"},
		{ID: 2, English: "two"},
		{ID: 3, English: "three"},
	}
	store := &fakeStore{session: &models.PracticeSession{
		UserID:   42,
		UnitIDs:  "1",
		Queue:    queue,
		Progress: models.Progress{Total: 6, Done: 3},
	}}

	clientA := NewService(42, store, NewMachine(append([]models.Word(nil), queue...), models.Progress{Total: 6, Done: 3}))
	clientB := NewService(42, store, NewMachine(append([]models.Word(nil), queue...), models.Progress{Total: 6, Done: 3}))

	// A answers the front word; done goes 3 -> 4 and is persisted
	require.Equal(t, OutcomeAdvanced, clientA.Submit("one"))

	// B is still viewing done=3 and idle; its poll reconciles
	clientB.syncTick()

	state := clientB.State()
	assert.Equal(t, 4, state.Progress.Done)
	require.Len(t, state.Queue, 2)
	assert.Equal(t, "two", state.Queue[0].English)
	assert.Equal(t, StatusIdle, state.Status)
}
