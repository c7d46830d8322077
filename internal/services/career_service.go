package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/career-service/internal/ai"
	"github.com/SAP-F-2025/career-service/internal/cache"
	"github.com/SAP-F-2025/career-service/internal/events"
	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/repositories"
)

type careerService struct {
	repo         repositories.Repository
	ai           ai.Client
	cache        *cache.CacheManager
	publisher    events.EventPublisher
	logger       *slog.Logger
	summaryTTL   time.Duration
	historyLimit int
}

func NewCareerService(
	repo repositories.Repository,
	client ai.Client,
	cacheManager *cache.CacheManager,
	publisher events.EventPublisher,
	logger *slog.Logger,
	config ServiceConfig,
) CareerService {
	return &careerService{
		repo:         repo,
		ai:           client,
		cache:        cacheManager,
		publisher:    publisher,
		logger:       logger,
		summaryTTL:   config.CacheTTL,
		historyLimit: config.HistoryLimit,
	}
}

func (s *careerService) Summary(ctx context.Context, userID uint) (*models.CareerSummaryResponse, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	generated := false
	key := cache.SummaryKey(userID, student.UpdatedAt)
	text, err := cache.GetOrLoad(ctx, s.cache.CareerSummary, key, s.summaryTTL, func() (string, error) {
		generated = true
		return generateAdvice(ctx, s.ai, student)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Career analysis failed", "user_id", userID, "error", err)
		return &models.CareerSummaryResponse{Summary: careerAnalysisErrorPrefix + err.Error()}, nil
	}

	data := events.SummaryEventData{Cached: !generated}
	if generated {
		if summary := recordSummary(ctx, s.repo, s.logger, student, text); summary != nil {
			data.SummaryID = summary.ID
		}
	}
	events.PublishSafe(ctx, s.publisher, s.logger, events.NewEvent(events.SummaryGenerated, userID, data))

	return &models.CareerSummaryResponse{Summary: text}, nil
}

func (s *careerService) History(ctx context.Context, userID uint) ([]models.CareerSummaryItem, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	summaries, err := s.repo.CareerSummary().ListByUser(ctx, userID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list career summaries: %w", err)
	}

	items := make([]models.CareerSummaryItem, 0, len(summaries))
	for _, cs := range summaries {
		items = append(items, models.CareerSummaryItem{
			ID:        cs.ID,
			Summary:   cs.Summary,
			CreatedAt: cs.CreatedAt,
		})
	}
	return items, nil
}

// Chat answers a free-form career question. A user without a profile still
// gets an answer, built on an empty profile block.
func (s *careerService) Chat(ctx context.Context, userID uint, message string) (string, error) {
	if userID == 0 {
		return "", ErrUnauthorized
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrMessageRequired
	}

	profile, err := s.repo.Student().GetProfile(ctx, userID)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			return "", fmt.Errorf("failed to load profile: %w", err)
		}
		profile = nil
	}

	reply, err := s.ai.Generate(ctx, ai.ChatbotPrompt(profile, message))
	if err != nil {
		s.logger.WarnContext(ctx, "Chatbot generation failed", "user_id", userID, "error", err)
		return "", err
	}
	return reply, nil
}
