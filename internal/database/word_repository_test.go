package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocadrill/pkg/models"
)

func englishWords(t *testing.T, repo *WordRepository, unitIDs []int64, userID int64) []string {
	t.Helper()
	words, err := repo.GetByUnits(unitIDs, userID)
	require.NoError(t, err)

	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w.English)
	}
	return out
}

func TestGetByUnitsFiltersOwnership(t *testing.T) {
	repo := NewWordRepository()

	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")

	aliceUnit := createTestUnit(t, alice, "animals", [][2]string{{"Cat", "Кот"}, {"Dog", "Собака"}})
	bobUnit := createTestUnit(t, bob, "food", [][2]string{{"Bread", "Хлеб"}})

	// requesting both units as alice only yields her words
	got := englishWords(t, repo, []int64{aliceUnit, bobUnit}, alice)
	assert.ElementsMatch(t, []string{"Cat", "Dog"}, got)
}

func TestGetByUnitsEmptyIDSetIsEmptyResult(t *testing.T) {
	repo := NewWordRepository()
	userID := createTestUser(t, "empty-ids@example.com")

	words, err := repo.GetByUnits([]int64{}, userID)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestGetAllForUserSpansUnits(t *testing.T) {
	repo := NewWordRepository()
	userID := createTestUser(t, "spans@example.com")

	createTestUnit(t, userID, "one", [][2]string{{"Cat", "Кот"}})
	createTestUnit(t, userID, "two", [][2]string{{"Dog", "Собака"}, {"Bird", "Птица"}})

	words, err := repo.GetAllForUser(userID)
	require.NoError(t, err)
	assert.Len(t, words, 3)
}

func TestGetByUnitChecksOwnership(t *testing.T) {
	repo := NewWordRepository()

	owner := createTestUser(t, "owner@example.com")
	intruder := createTestUser(t, "intruder@example.com")
	unitID := createTestUnit(t, owner, "secret", [][2]string{{"Key", "Ключ"}})

	words, err := repo.GetByUnit(unitID, intruder)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestUnitDeleteCascadesToWords(t *testing.T) {
	units := NewUnitRepository()
	words := NewWordRepository()

	userID := createTestUser(t, "cascade@example.com")
	unitID := createTestUnit(t, userID, "temp", [][2]string{{"Cat", "Кот"}})

	require.NoError(t, units.Delete(unitID, userID))

	_, err := units.GetByID(unitID, userID)
	assert.ErrorIs(t, err, ErrUnitNotFound)

	left, err := words.GetAllForUser(userID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestUnitDeleteRejectsForeignUnit(t *testing.T) {
	units := NewUnitRepository()

	owner := createTestUser(t, "del-owner@example.com")
	intruder := createTestUser(t, "del-intruder@example.com")
	unitID := createTestUnit(t, owner, "mine", [][2]string{{"Cat", "Кот"}})

	err := units.Delete(unitID, intruder)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepository()

	createTestUser(t, "dup@example.com")

	err := repo.Create(&models.User{Email: "dup@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
