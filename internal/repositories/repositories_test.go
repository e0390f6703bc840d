package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"foodybuddy/internal/models/db_models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "hashed_password", "is_active"}).
				AddRow(id.String(), "a@b.co", "An", "hash", true))

		user, err := NewUserRepository(db).FindByEmail(ctx, "a@b.co")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "An", user.FullName)
		assert.True(t, user.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found is nil, nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		user, err := NewUserRepository(db).FindByEmail(ctx, "nobody@b.co")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("driver error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errors.New("conn reset"))

		_, err := NewUserRepository(db).FindByEmail(ctx, "a@b.co")
		assert.Error(t, err)
	})
}

func TestUserRepository_Insert(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(1, 1))

	user := &db_models.User{Email: "a@b.co", FullName: "An", HashedPassword: "h", IsActive: true}
	require.NoError(t, NewUserRepository(db).Insert(context.Background(), user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPreferencesRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`INSERT INTO "user_preferences" .* ON CONFLICT \("user_id"\) DO UPDATE SET "answers"="excluded"."answers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now()
	err := NewUserPreferencesRepository(db).Upsert(context.Background(), &db_models.UserPreferences{
		UserID:      uuid.New(),
		Answers:     datatypes.JSON(`{"cooking_skill":"beginner"}`),
		Version:     db_models.PreferencesVersion,
		IsCompleted: true,
		CompletedAt: &now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPreferencesRepository_FindByUserID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "user_preferences" WHERE user_id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "answers", "version", "is_completed"}).
				AddRow(userID.String(), []byte(`{"allergies":["eggs"]}`), "1.0", true))

		pref, err := NewUserPreferencesRepository(db).FindByUserID(ctx, userID.String())
		require.NoError(t, err)
		require.NotNil(t, pref)
		assert.JSONEq(t, `{"allergies":["eggs"]}`, string(pref.Answers))
		assert.True(t, pref.IsCompleted)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "user_preferences"`).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		pref, err := NewUserPreferencesRepository(db).FindByUserID(ctx, userID.String())
		assert.NoError(t, err)
		assert.Nil(t, pref)
	})
}

func TestDishEmbeddingRepository_SearchByVector(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \*, \(1 - \(embedding <=> \$1\)\) AS similarity\s+FROM dish_embeddings\s+ORDER BY embedding <=> \$2\s+LIMIT \$3`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 5).
		WillReturnRows(sqlmock.NewRows([]string{"dish_id", "dish_name", "ingredients", "dish_tags", "embedding", "similarity"}).
			AddRow("d1", "Pho bo", []byte("{rice noodles,beef}"), []byte("{soup}"), []byte("[0.1,0.2]"), 0.92).
			AddRow("d2", "Bun cha", []byte("{}"), []byte("{grilled}"), []byte("[0.3,0.4]"), 0.81))

	hits, err := NewDishEmbeddingRepository(db).SearchByVector(context.Background(), pgvector.NewVector([]float32{0.1, 0.2}), 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Pho bo", hits[0].DishName)
	assert.Equal(t, []string{"rice noodles", "beef"}, []string(hits[0].Ingredients))
	assert.InDelta(t, 0.92, hits[0].Similarity, 1e-9)
	assert.Equal(t, []float32{0.3, 0.4}, hits[1].Embedding.Slice())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDishEmbeddingRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`INSERT INTO "dish_embeddings" .* ON CONFLICT \("dish_id"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewDishEmbeddingRepository(db).Upsert(context.Background(), &db_models.DishEmbedding{
		DishID:    "d1",
		DishName:  "Pho bo",
		Embedding: pgvector.NewVector([]float32{0.1, 0.2}),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
