package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/career-service/internal/ai"
	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/repositories"
)

const (
	careerAnalysisErrorPrefix = "Career analysis error: "
	aiErrorPrefix             = "AI error: "
)

// generateAdvice asks the model for a career summary of student.
func generateAdvice(ctx context.Context, client ai.Client, student *models.Student) (string, error) {
	return client.Generate(ctx, ai.CareerSummaryPrompt(student))
}

// recordSummary stores a generated summary together with the profile it came from.
// Failures are logged; history is never allowed to fail the request.
func recordSummary(ctx context.Context, repo repositories.Repository, logger *slog.Logger, student *models.Student, text string) *models.CareerSummary {
	summary := &models.CareerSummary{
		UserID:  student.UserID,
		Summary: text,
	}
	if snapshot, err := profileSnapshot(student); err == nil {
		summary.ProfileSnapshot = snapshot
	}

	if err := repo.CareerSummary().Create(ctx, summary); err != nil {
		logger.ErrorContext(ctx, "Failed to record career summary", "user_id", student.UserID, "error", err)
		return nil
	}
	return summary
}

func profileSnapshot(student *models.Student) (datatypes.JSON, error) {
	fields := make(map[string]string)
	for _, f := range student.ProfileFields() {
		fields[f.Key] = f.Value
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func derefMessages(messages []*models.DoubtMessage) []models.DoubtMessage {
	out := make([]models.DoubtMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, *m)
	}
	return out
}
