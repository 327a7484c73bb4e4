package repository

import (
	"context"
	"testing"
	"time"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/database/dbtest"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func createUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hash", Email: email}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	repo := NewUserRepository(db)

	alice := createUser(t, db, "alice", "a@b.com")
	assert.NotZero(t, alice.ID)

	t.Run("get by id and username", func(t *testing.T) {
		byID, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)

		byName, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byName.ID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, alice.ID+100)
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.GetByUsername(ctx, "bob")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := repo.ExistsByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByEmail(ctx, "other@b.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "x", Email: "other@b.com"})
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("update tokens overwrites", func(t *testing.T) {
		require.NoError(t, repo.UpdateTokens(ctx, alice.ID, 10))
		require.NoError(t, repo.UpdateTokens(ctx, alice.ID, -3))

		user, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, -3, user.Tokens)

		assert.ErrorIs(t, repo.UpdateTokens(ctx, alice.ID+100, 1), ErrUserNotFound)
	})
}

func TestSymptomRepository_LatestAndAll(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	repo := NewSymptomRepository(db)
	alice := createUser(t, db, "alice", "a@b.com")
	bob := createUser(t, db, "bob", "b@b.com")

	_, err := repo.GetLatestByUserID(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrSymptomNotFound)

	all, err := repo.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, all)

	// inserted out of timestamp order
	offsets := []time.Duration{time.Minute, 3 * time.Minute, 2 * time.Minute}
	for i, off := range offsets {
		require.NoError(t, repo.Create(ctx, &models.Symptom{
			UserID:   alice.ID,
			Datetime: base.Add(off),
			Symptoms: datatypes.JSON([]byte{byte('1' + i)}),
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.Symptom{UserID: bob.ID, Datetime: base.Add(time.Hour), Symptoms: datatypes.JSON(`9`)}))

	latest, err := repo.GetLatestByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "2", string(latest.Symptoms))
	assert.True(t, latest.Datetime.Equal(base.Add(3*time.Minute)))

	all, err = repo.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "1", string(all[0].Symptoms))
	assert.Equal(t, "2", string(all[1].Symptoms))
	assert.Equal(t, "3", string(all[2].Symptoms))
}

func TestLatest_TieBreakHighestID(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	alice := createUser(t, db, "alice", "a@b.com")

	predictions := NewPredictionRepository(db)
	notes := NewMentalHealthNoteRepository(db)

	for _, result := range []string{"cold", "flu"} {
		require.NoError(t, predictions.Create(ctx, &models.Prediction{UserID: alice.ID, Datetime: base, Result: result}))
	}
	for _, text := range []string{"first", "second"} {
		require.NoError(t, notes.Create(ctx, &models.MentalHealthNote{UserID: alice.ID, Datetime: base, Notes: text}))
	}

	p, err := predictions.GetLatestByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "flu", p.Result)

	n, err := notes.GetLatestByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", n.Notes)

	_, err = predictions.GetLatestByUserID(ctx, alice.ID+1)
	assert.ErrorIs(t, err, ErrPredictionNotFound)
	_, err = notes.GetLatestByUserID(ctx, alice.ID+1)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestUserRepository_DeleteCascade(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*gorm.DB, *models.User, *models.User) {
		db := dbtest.Open(t)
		alice := createUser(t, db, "alice", "a@b.com")
		bob := createUser(t, db, "bob", "b@b.com")
		for _, u := range []*models.User{alice, bob} {
			require.NoError(t, NewSymptomRepository(db).Create(ctx, &models.Symptom{UserID: u.ID, Datetime: base, Symptoms: datatypes.JSON(`[1]`)}))
			require.NoError(t, NewPredictionRepository(db).Create(ctx, &models.Prediction{UserID: u.ID, Datetime: base, Result: "flu"}))
			require.NoError(t, NewMentalHealthNoteRepository(db).Create(ctx, &models.MentalHealthNote{UserID: u.ID, Datetime: base, Notes: "ok"}))
		}
		return db, alice, bob
	}

	t.Run("notes retained", func(t *testing.T) {
		db, alice, bob := seed(t)
		repo := NewUserRepository(db)

		res, err := repo.DeleteCascade(ctx, alice.ID, false)
		require.NoError(t, err)
		assert.Equal(t, &DeleteResult{Symptoms: 1, Predictions: 1, NotesRetained: 1}, res)

		_, err = repo.GetByID(ctx, alice.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)

		symptoms, err := NewSymptomRepository(db).GetByUserID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, symptoms)

		predictions, err := NewPredictionRepository(db).GetByUserID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, predictions)

		notes, err := NewMentalHealthNoteRepository(db).GetByUserID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, notes, 1)

		// other users untouched
		bobSymptoms, err := NewSymptomRepository(db).GetByUserID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Len(t, bobSymptoms, 1)
	})

	t.Run("notes deleted", func(t *testing.T) {
		db, alice, _ := seed(t)

		res, err := NewUserRepository(db).DeleteCascade(ctx, alice.ID, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.NotesDeleted)

		notes, err := NewMentalHealthNoteRepository(db).GetByUserID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("missing user rolls back", func(t *testing.T) {
		db, alice, _ := seed(t)
		repo := NewUserRepository(db)

		_, err := repo.DeleteCascade(ctx, alice.ID+100, true)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
