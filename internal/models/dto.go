package models

import (
	"time"
)

// ===== AUTH DTOs =====

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	UserID  uint   `json:"user_id"`
	Token   string `json:"token,omitempty"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Token   string `json:"token,omitempty"`
}

// ===== PROFILE DTOs =====

type ProfileSubmitRequest struct {
	UserID               UserRef `json:"user_id"`
	Name                 string  `json:"name" validate:"required,max=255"`
	Email                string  `json:"email" validate:"required,max=255"`
	HighestQualification string  `json:"highest_qualification" validate:"max=255"`
	FieldOfStudy         string  `json:"field_of_study" validate:"max=255"`
	KnownSkills          string  `json:"known_skills"`
	CareerInterests      string  `json:"career_interests"`
	ExpectedSalary       string  `json:"expected_salary" validate:"max=50"`
	PreferredJobLocation string  `json:"preferred_job_location" validate:"max=255"`
	Strengths            string  `json:"strengths"`
	LongTermGoals        string  `json:"long_term_goals"`
}

type ProfileUpdateRequest struct {
	Name                 *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email                *string `json:"email" validate:"omitempty,min=1,max=255"`
	HighestQualification *string `json:"highest_qualification" validate:"omitempty,max=255"`
	FieldOfStudy         *string `json:"field_of_study" validate:"omitempty,max=255"`
	KnownSkills          *string `json:"known_skills"`
	CareerInterests      *string `json:"career_interests"`
	ExpectedSalary       *string `json:"expected_salary" validate:"omitempty,max=50"`
	PreferredJobLocation *string `json:"preferred_job_location" validate:"omitempty,max=255"`
	Strengths            *string `json:"strengths"`
	LongTermGoals        *string `json:"long_term_goals"`
}

type ProfileSubmitResponse struct {
	Message      string `json:"message"`
	CareerAdvice string `json:"career_advice"`
}

type CheckProfileResponse struct {
	HasProfile bool `json:"hasProfile"`
}

// ===== CAREER DTOs =====

type CareerSummaryRequest struct {
	UserID UserRef `json:"user_id"`
}

type CareerSummaryResponse struct {
	Summary string `json:"summary"`
}

type CareerSummaryItem struct {
	ID        uint      `json:"id"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatbotRequest struct {
	UserID  UserRef `json:"user_id"`
	Message string  `json:"message"`
}

type ChatbotResponse struct {
	Response string `json:"response"`
}

// ===== DOUBT DTOs =====

type CreateDoubtRequest struct {
	UserID   UserRef `json:"user_id"`
	Title    string  `json:"title" validate:"required,notblank,max=255"`
	Question string  `json:"question" validate:"required,notblank"`
}

type CreateDoubtResponse struct {
	Success bool `json:"success"`
	DoubtID uint `json:"doubt_id"`
}

type ReplyDoubtRequest struct {
	UserID  UserRef `json:"user_id"`
	Message string  `json:"message" validate:"required,notblank"`
	UseAI   bool    `json:"use_ai"`
}

type ReplyDoubtResponse struct {
	Success  bool               `json:"success"`
	Messages []DoubtMessageItem `json:"messages"`
	AI       *string            `json:"ai"`
}

type ResolveDoubtRequest struct {
	UserID          UserRef `json:"user_id"`
	ResolutionNotes *string `json:"resolution_notes"`
}

type DoubtListItem struct {
	ID        uint        `json:"id"`
	Title     string      `json:"title"`
	Status    DoubtStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type DoubtListResponse struct {
	Doubts []DoubtListItem `json:"doubts"`
}

type DoubtMessageItem struct {
	ID        uint          `json:"id"`
	Sender    MessageSender `json:"sender"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
}

type DoubtDetailResponse struct {
	Doubt    *Doubt             `json:"doubt"`
	Messages []DoubtMessageItem `json:"messages"`
}

// ToMessageItems strips the doubt id from thread messages for API output.
func ToMessageItems(messages []DoubtMessage) []DoubtMessageItem {
	items := make([]DoubtMessageItem, 0, len(messages))
	for _, m := range messages {
		items = append(items, DoubtMessageItem{
			ID:        m.ID,
			Sender:    m.Sender,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
		})
	}
	return items
}
