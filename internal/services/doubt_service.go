package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/career-service/internal/ai"
	"github.com/SAP-F-2025/career-service/internal/events"
	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/repositories"
	"github.com/SAP-F-2025/career-service/internal/validator"
)

// replyContextSize is how many thread messages the reply prompt sees.
const replyContextSize = 10

type doubtService struct {
	repo      repositories.Repository
	ai        ai.Client
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewDoubtService(repo repositories.Repository, client ai.Client, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) DoubtService {
	return &doubtService{
		repo:      repo,
		ai:        client,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *doubtService) Create(ctx context.Context, userID uint, req *models.CreateDoubtRequest) (*models.Doubt, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Question = strings.TrimSpace(req.Question)
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDoubtFieldsRequired, err)
	}

	var (
		doubt    *models.Doubt
		aiFailed bool
	)
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		doubt = &models.Doubt{UserID: userID, Title: req.Title, Status: models.DoubtOpen}
		if err := tx.Doubt().Create(ctx, doubt); err != nil {
			return err
		}
		if err := s.addMessage(ctx, tx, doubt.ID, models.SenderUser, req.Question); err != nil {
			return err
		}

		thread, err := tx.DoubtMessage().ListByDoubt(ctx, doubt.ID)
		if err != nil {
			return err
		}

		answer, aiErr := s.ai.Generate(ctx, ai.InitialDoubtPrompt(doubt.Title, derefMessages(thread)))
		if aiErr != nil {
			s.logger.WarnContext(ctx, "Initial doubt answer failed", "doubt_id", doubt.ID, "error", aiErr)
			aiFailed = true
			answer = aiErrorPrefix + aiErr.Error()
		}
		if answer == "" {
			return nil
		}
		return s.addMessage(ctx, tx, doubt.ID, models.SenderBot, answer)
	})
	if err != nil {
		if repositories.IsForeignKeyError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create doubt: %w", err)
	}

	s.logger.InfoContext(ctx, "Doubt created", "doubt_id", doubt.ID, "user_id", userID)
	events.PublishSafe(ctx, s.publisher, s.logger, events.NewEvent(events.DoubtCreated, userID, events.DoubtEventData{
		DoubtID:  doubt.ID,
		Title:    doubt.Title,
		UsedAI:   true,
		AIFailed: aiFailed,
	}))
	return doubt, nil
}

func (s *doubtService) List(ctx context.Context, userID uint, status string) ([]models.DoubtListItem, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	filters := repositories.DoubtFilters{Status: s.validator.Business().StatusFilter(status)}
	doubts, err := s.repo.Doubt().ListByUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list doubts: %w", err)
	}

	items := make([]models.DoubtListItem, 0, len(doubts))
	for _, d := range doubts {
		items = append(items, models.DoubtListItem{
			ID:        d.ID,
			Title:     d.Title,
			Status:    d.Status,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return items, nil
}

func (s *doubtService) Get(ctx context.Context, userID, doubtID uint) (*models.DoubtDetailResponse, error) {
	doubt, err := s.ownedDoubt(ctx, s.repo, userID, doubtID)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.DoubtMessage().ListByDoubt(ctx, doubtID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return &models.DoubtDetailResponse{
		Doubt:    doubt,
		Messages: models.ToMessageItems(derefMessages(messages)),
	}, nil
}

func (s *doubtService) Reply(ctx context.Context, userID, doubtID uint, req *models.ReplyDoubtRequest) (*models.ReplyDoubtResponse, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMessageRequired, err)
	}

	var (
		aiText   *string
		aiFailed bool
	)
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		doubt, err := s.ownedDoubt(ctx, tx, userID, doubtID)
		if err != nil {
			return err
		}
		if err := s.addMessage(ctx, tx, doubtID, models.SenderUser, req.Message); err != nil {
			return err
		}

		if req.UseAI {
			text, failed, err := s.mentorReply(ctx, tx, doubt, userID, req.Message)
			if err != nil {
				return err
			}
			aiText, aiFailed = &text, failed
			if text != "" {
				if err := s.addMessage(ctx, tx, doubtID, models.SenderBot, text); err != nil {
					return err
				}
			}
		}

		return tx.Doubt().Touch(ctx, doubtID)
	})
	if err != nil {
		if errors.Is(err, ErrDoubtNotFound) || errors.Is(err, ErrForbidden) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to reply to doubt: %w", err)
	}

	messages, err := s.repo.DoubtMessage().ListByDoubt(ctx, doubtID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	events.PublishSafe(ctx, s.publisher, s.logger, events.NewEvent(events.DoubtReplied, userID, events.DoubtEventData{
		DoubtID:  doubtID,
		UsedAI:   req.UseAI,
		AIFailed: aiFailed,
	}))

	return &models.ReplyDoubtResponse{
		Success:  true,
		Messages: models.ToMessageItems(derefMessages(messages)),
		AI:       aiText,
	}, nil
}

// mentorReply generates the bot answer for the latest question. AI failures
// come back as the stored error text, not as an error.
func (s *doubtService) mentorReply(ctx context.Context, tx repositories.Repository, doubt *models.Doubt, userID uint, latest string) (string, bool, error) {
	profile, err := tx.Student().GetProfile(ctx, userID)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			return "", false, err
		}
		profile = nil
	}

	recent, err := tx.DoubtMessage().ListRecent(ctx, doubt.ID, replyContextSize)
	if err != nil {
		return "", false, err
	}

	text, err := s.ai.Generate(ctx, ai.DoubtReplyPrompt(profile, doubt.Title, derefMessages(recent), latest))
	if err != nil {
		s.logger.WarnContext(ctx, "Doubt reply generation failed", "doubt_id", doubt.ID, "error", err)
		return aiErrorPrefix + err.Error(), true, nil
	}
	return text, false, nil
}

func (s *doubtService) Resolve(ctx context.Context, userID, doubtID uint, req *models.ResolveDoubtRequest) error {
	if _, err := s.ownedDoubt(ctx, s.repo, userID, doubtID); err != nil {
		return err
	}

	notes := s.validator.Business().NormalizeNotes(req.ResolutionNotes)
	if err := s.repo.Doubt().Resolve(ctx, doubtID, notes); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrDoubtNotFound
		}
		return fmt.Errorf("failed to resolve doubt: %w", err)
	}

	s.logger.InfoContext(ctx, "Doubt resolved", "doubt_id", doubtID, "user_id", userID)
	events.PublishSafe(ctx, s.publisher, s.logger, events.NewEvent(events.DoubtResolved, userID, events.DoubtEventData{
		DoubtID:  doubtID,
		HasNotes: notes != nil,
	}))
	return nil
}

func (s *doubtService) Export(ctx context.Context, userID uint, w io.Writer) error {
	if userID == 0 {
		return ErrUnauthorized
	}

	doubts, err := s.repo.Doubt().ListByUser(ctx, userID, repositories.DoubtFilters{})
	if err != nil {
		return fmt.Errorf("failed to list doubts: %w", err)
	}

	ids := make([]uint, 0, len(doubts))
	for _, d := range doubts {
		ids = append(ids, d.ID)
	}
	messages, err := s.repo.DoubtMessage().ListByDoubts(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}

	return writeDoubtWorkbook(w, doubts, messages)
}

func (s *doubtService) ownedDoubt(ctx context.Context, repo repositories.Repository, userID, doubtID uint) (*models.Doubt, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	doubt, err := repo.Doubt().GetByID(ctx, doubtID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrDoubtNotFound
		}
		return nil, fmt.Errorf("failed to load doubt: %w", err)
	}

	if verrs := s.validator.Business().ValidateOwnership(doubt, userID); verrs != nil {
		s.logger.WarnContext(ctx, "Doubt access denied", "doubt_id", doubtID, "user_id", userID, "reason", verrs.Error())
		return nil, ErrForbidden
	}
	return doubt, nil
}

func (s *doubtService) addMessage(ctx context.Context, repo repositories.Repository, doubtID uint, sender models.MessageSender, text string) error {
	message := &models.DoubtMessage{DoubtID: doubtID, Sender: sender, Message: text}
	if err := s.validator.Validate(message); err != nil {
		return err
	}
	return repo.DoubtMessage().Create(ctx, message)
}
