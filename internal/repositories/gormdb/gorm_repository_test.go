package gormdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/repositories"
	"github.com/SAP-F-2025/career-service/pkg"
)

// newTestDB opens a private in-memory SQLite database with foreign keys on and
// the production schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, pkg.Migrate(db))
	return db
}

func newTestRepository(t *testing.T, redisClient *redis.Client) (*GormRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewGormRepository(RepositoryConfig{DB: db, RedisClient: redisClient}), db
}

func createUser(t *testing.T, repo *GormRepository, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, repo.User().Create(context.Background(), user))
	return user
}

func createStudent(t *testing.T, repo *GormRepository, userID uint) *models.Student {
	t.Helper()
	student := &models.Student{
		UserID:          userID,
		Name:            "Meera",
		Email:           "meera.form@example.com",
		FieldOfStudy:    "Economics",
		KnownSkills:     "Excel, R",
		CareerInterests: "Policy research",
	}
	require.NoError(t, repo.Student().Create(context.Background(), student))
	return student
}

func TestUserGorm_DuplicateEmail(t *testing.T) {
	repo, _ := newTestRepository(t, nil)
	ctx := context.Background()
	createUser(t, repo, "meera@example.com")

	err := repo.User().Create(ctx, &models.User{Email: "meera@example.com", PasswordHash: "other"})
	require.Error(t, err)
	assert.True(t, repositories.IsDuplicateError(err), err.Error())
	assert.Contains(t, err.Error(), "create user")

	exists, err := repo.User().ExistsByEmail(ctx, "meera@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.User().GetByEmail(ctx, "nobody@example.com")
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestStudentGorm_ForeignKeyAndUniqueUser(t *testing.T) {
	repo, _ := newTestRepository(t, nil)
	ctx := context.Background()

	err := repo.Student().Create(ctx, &models.Student{UserID: 404, Name: "Ghost", Email: "ghost@example.com"})
	require.Error(t, err)
	assert.True(t, repositories.IsForeignKeyError(err), err.Error())

	user := createUser(t, repo, "meera@example.com")
	createStudent(t, repo, user.ID)

	err = repo.Student().Create(ctx, &models.Student{UserID: user.ID, Name: "Again", Email: "again@example.com"})
	require.Error(t, err)
	assert.True(t, repositories.IsDuplicateError(err), err.Error())
}

func TestStudentGorm_GetProfileJoinsAccountEmail(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo, _ := newTestRepository(t, client)
	ctx := context.Background()
	user := createUser(t, repo, "meera@example.com")
	student := createStudent(t, repo, user.ID)

	profile, err := repo.Student().GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "meera@example.com", profile.AccountEmail)
	assert.Equal(t, "meera.form@example.com", profile.Student.Email)
	assert.Equal(t, "Economics", profile.FieldOfStudy)
	assert.NotEmpty(t, mr.Keys(), "profile should be cached")

	student.FieldOfStudy = "Public Policy"
	require.NoError(t, repo.Student().Update(ctx, student))

	profile, err = repo.Student().GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Public Policy", profile.FieldOfStudy)

	_, err = repo.Student().GetProfile(ctx, user.ID+1)
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestStudentGorm_UpdateAndDeleteMissing(t *testing.T) {
	repo, _ := newTestRepository(t, nil)
	ctx := context.Background()

	err := repo.Student().Update(ctx, &models.Student{ID: 99, UserID: 99, Name: "x"})
	assert.True(t, repositories.IsNotFoundError(err))

	err = repo.Student().DeleteByUserID(ctx, 99)
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestDeletingUserCascades(t *testing.T) {
	repo, db := newTestRepository(t, nil)
	ctx := context.Background()

	user := createUser(t, repo, "meera@example.com")
	keep := createUser(t, repo, "keep@example.com")
	createStudent(t, repo, user.ID)
	createStudent(t, repo, keep.ID)

	doubt := &models.Doubt{UserID: user.ID, Title: "Masters abroad?", Status: models.DoubtOpen}
	require.NoError(t, repo.Doubt().Create(ctx, doubt))
	require.NoError(t, repo.DoubtMessage().Create(ctx, &models.DoubtMessage{DoubtID: doubt.ID, Sender: models.SenderUser, Message: "Is it worth it?"}))
	require.NoError(t, repo.DoubtMessage().Create(ctx, &models.DoubtMessage{DoubtID: doubt.ID, Sender: models.SenderBot, Message: "Depends on funding."}))
	require.NoError(t, repo.CareerSummary().Create(ctx, &models.CareerSummary{UserID: user.ID, Summary: "Consider policy analysis."}))

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	count := func(model interface{}, query string, args ...interface{}) int64 {
		var n int64
		require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
		return n
	}
	assert.Zero(t, count(&models.Student{}, "user_id = ?", user.ID))
	assert.Zero(t, count(&models.Doubt{}, "user_id = ?", user.ID))
	assert.Zero(t, count(&models.DoubtMessage{}, "doubt_id = ?", doubt.ID))
	assert.Zero(t, count(&models.CareerSummary{}, "user_id = ?", user.ID))

	assert.Equal(t, int64(1), count(&models.Student{}, "user_id = ?", keep.ID))
}

func TestDoubtMessageGorm_ThreadOrder(t *testing.T) {
	repo, _ := newTestRepository(t, nil)
	ctx := context.Background()
	user := createUser(t, repo, "meera@example.com")
	doubt := &models.Doubt{UserID: user.ID, Title: "Order", Status: models.DoubtOpen}
	require.NoError(t, repo.Doubt().Create(ctx, doubt))

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	// inserted out of time order; m3 and m3b share a timestamp and fall back to id
	inserts := []struct {
		text   string
		offset time.Duration
	}{
		{"m3", 3 * time.Minute},
		{"m1", 1 * time.Minute},
		{"m4", 4 * time.Minute},
		{"m0", 0},
		{"m3b", 3 * time.Minute},
		{"m2", 2 * time.Minute},
	}
	for _, in := range inserts {
		require.NoError(t, repo.DoubtMessage().Create(ctx, &models.DoubtMessage{
			DoubtID:   doubt.ID,
			Sender:    models.SenderUser,
			Message:   in.text,
			CreatedAt: base.Add(in.offset),
		}))
	}

	texts := func(messages []*models.DoubtMessage) []string {
		out := make([]string, 0, len(messages))
		for _, m := range messages {
			out = append(out, m.Message)
		}
		return out
	}

	all, err := repo.DoubtMessage().ListByDoubt(ctx, doubt.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"m0", "m1", "m2", "m3", "m3b", "m4"}, texts(all))

	recent, err := repo.DoubtMessage().ListRecent(ctx, doubt.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"m3", "m3b", "m4"}, texts(recent))

	everything, err := repo.DoubtMessage().ListRecent(ctx, doubt.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, texts(all), texts(everything))

	grouped, err := repo.DoubtMessage().ListByDoubts(ctx, []uint{doubt.ID})
	require.NoError(t, err)
	assert.Equal(t, texts(all), texts(grouped))
}

func TestDoubtGorm_ListResolveTouch(t *testing.T) {
	repo, _ := newTestRepository(t, nil)
	ctx := context.Background()
	user := createUser(t, repo, "meera@example.com")

	first := &models.Doubt{UserID: user.ID, Title: "First", Status: models.DoubtOpen}
	second := &models.Doubt{UserID: user.ID, Title: "Second", Status: models.DoubtOpen}
	require.NoError(t, repo.Doubt().Create(ctx, first))
	require.NoError(t, repo.Doubt().Create(ctx, second))

	require.NoError(t, repo.Doubt().Touch(ctx, first.ID))
	list, err := repo.Doubt().ListByUser(ctx, user.ID, repositories.DoubtFilters{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	require.NoError(t, repo.Doubt().Resolve(ctx, second.ID, nil))
	resolved := models.DoubtResolved
	list, err = repo.Doubt().ListByUser(ctx, user.ID, repositories.DoubtFilters{Status: &resolved})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Nil(t, list[0].ResolutionNotes)

	err = repo.Doubt().Resolve(ctx, 999, nil)
	assert.True(t, repositories.IsNotFoundError(err))

	err = repo.DoubtMessage().Create(ctx, &models.DoubtMessage{DoubtID: 999, Sender: models.SenderUser, Message: "orphan"})
	assert.True(t, repositories.IsForeignKeyError(err))
}

func TestWithTransaction_RollsBack(t *testing.T) {
	repo, _ := newTestRepository(t, nil)
	ctx := context.Background()
	user := createUser(t, repo, "meera@example.com")
	boom := errors.New("ai unavailable")

	err := repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		doubt := &models.Doubt{UserID: user.ID, Title: "Rolled back", Status: models.DoubtOpen}
		if err := tx.Doubt().Create(ctx, doubt); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := repo.Doubt().ListByUser(ctx, user.ID, repositories.DoubtFilters{})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.Ping(ctx))
}
