package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/career-service/internal/events"
	"github.com/SAP-F-2025/career-service/internal/models"
)

func TestProfileService_Submit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "asha@example.com")

	resp, err := env.manager.Profile().Submit(ctx, userID, sampleProfile())
	require.NoError(t, err)
	assert.Equal(t, "Data saved successfully!", resp.Message)
	assert.Equal(t, "Consider a role in data engineering.", resp.CareerAdvice)
	assert.Contains(t, env.ai.LastPrompt(), "Skills: Go, SQL")

	has, err := env.manager.Profile().CheckProfile(ctx, userID)
	require.NoError(t, err)
	assert.True(t, has)

	assert.Len(t, env.publisher.EventsOfType(events.ProfileSubmitted), 1)
	assert.Equal(t, 1, env.repo.SummaryCount())
}

func TestProfileService_Submit_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "asha@example.com")
	env.submitProfile(t, userID)

	_, err := env.manager.Profile().Submit(ctx, userID, sampleProfile())
	assert.ErrorIs(t, err, ErrProfileExists)

	_, err = env.manager.Profile().Submit(ctx, 0, sampleProfile())
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.manager.Profile().Submit(ctx, 9999, sampleProfile())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfileService_Submit_AdviceFailureStillSaves(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "asha@example.com")
	env.ai.Err = errors.New("quota exceeded")

	resp, err := env.manager.Profile().Submit(ctx, userID, sampleProfile())
	require.NoError(t, err)
	assert.Equal(t, "Career analysis error: quota exceeded", resp.CareerAdvice)
	assert.Equal(t, 0, env.repo.SummaryCount())

	has, err := env.manager.Profile().CheckProfile(ctx, userID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestProfileService_GetUpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	profiles := env.manager.Profile()
	userID := env.registerUser(t, "asha@example.com")

	_, err := profiles.GetProfile(ctx, userID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	env.submitProfile(t, userID)

	profile, err := profiles.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", profile.Name)
	assert.Equal(t, "asha@example.com", profile.AccountEmail)

	skills := "Go, SQL, Kafka"
	updated, err := profiles.Update(ctx, userID, &models.ProfileUpdateRequest{KnownSkills: &skills})
	require.NoError(t, err)
	assert.Equal(t, "Go, SQL, Kafka", updated.KnownSkills)
	assert.Equal(t, "Asha", updated.Name)
	assert.Len(t, env.publisher.EventsOfType(events.ProfileUpdated), 1)

	require.NoError(t, profiles.Delete(ctx, userID))
	has, err := profiles.CheckProfile(ctx, userID)
	require.NoError(t, err)
	assert.False(t, has)

	assert.ErrorIs(t, profiles.Delete(ctx, userID), ErrProfileNotFound)
	_, err = profiles.Update(ctx, userID, &models.ProfileUpdateRequest{KnownSkills: &skills})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
