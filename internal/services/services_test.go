package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/career-service/internal/cache"
	"github.com/SAP-F-2025/career-service/internal/events"
	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/testutil"
	"github.com/SAP-F-2025/career-service/internal/utils"
	"github.com/SAP-F-2025/career-service/internal/validator"
)

type testEnv struct {
	repo      *testutil.MemoryRepository
	ai        *testutil.FakeAI
	publisher *events.MockEventPublisher
	redis     *miniredis.Miniredis
	tokens    *utils.TokenIssuer
	manager   ServiceManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	env := &testEnv{
		repo:      testutil.NewMemoryRepository(),
		ai:        testutil.NewFakeAI("Consider a role in data engineering."),
		publisher: events.NewMockEventPublisher(logger),
		redis:     mr,
		tokens:    utils.NewTokenIssuer("test-secret", time.Hour),
	}
	env.manager = NewDefaultServiceManager(Dependencies{
		Repo:      env.repo,
		AI:        env.ai,
		Cache:     cache.NewCacheManager(client),
		Publisher: env.publisher,
		Tokens:    env.tokens,
		Logger:    logger,
		Validator: validator.New(),
	})
	require.NoError(t, env.manager.Initialize(context.Background()))
	return env
}

func (e *testEnv) registerUser(t *testing.T, email string) uint {
	t.Helper()
	resp, err := e.manager.Auth().Register(context.Background(), &models.RegisterRequest{
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return resp.UserID
}

func (e *testEnv) submitProfile(t *testing.T, userID uint) {
	t.Helper()
	_, err := e.manager.Profile().Submit(context.Background(), userID, sampleProfile())
	require.NoError(t, err)
}

func sampleProfile() *models.ProfileSubmitRequest {
	return &models.ProfileSubmitRequest{
		Name:                 "Asha",
		Email:                "asha.form@example.com",
		HighestQualification: "B.Tech",
		FieldOfStudy:         "Computer Science",
		KnownSkills:          "Go, SQL",
		CareerInterests:      "Backend",
		ExpectedSalary:       "12 LPA",
		PreferredJobLocation: "Bengaluru",
		Strengths:            "Problem solving",
		LongTermGoals:        "Staff engineer",
	}
}
