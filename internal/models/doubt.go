package models

import (
	"time"
)

type DoubtStatus string

const (
	DoubtOpen     DoubtStatus = "open"
	DoubtResolved DoubtStatus = "resolved"
)

func (s DoubtStatus) IsValid() bool {
	return s == DoubtOpen || s == DoubtResolved
}

type MessageSender string

const (
	SenderUser   MessageSender = "user"
	SenderBot    MessageSender = "bot"
	SenderMentor MessageSender = "mentor"
)

func (s MessageSender) IsValid() bool {
	switch s {
	case SenderUser, SenderBot, SenderMentor:
		return true
	}
	return false
}

// Doubt is a student-submitted question thread.
type Doubt struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	UserID          uint        `json:"user_id" gorm:"not null;index:idx_doubts_user"`
	Title           string      `json:"title" gorm:"not null;size:255"`
	Status          DoubtStatus `json:"status" gorm:"not null;size:16;default:open;index"`
	ResolutionNotes *string     `json:"resolution_notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []DoubtMessage `json:"-" gorm:"foreignKey:DoubtID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Doubt) TableName() string {
	return "doubts"
}

func (d *Doubt) IsOwnedBy(userID uint) bool {
	return d.UserID == userID
}

type DoubtMessage struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	DoubtID   uint          `json:"-" gorm:"not null;index:idx_doubt_id"`
	Sender    MessageSender `json:"sender" gorm:"not null;size:16" validate:"required,message_sender"`
	Message   string        `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time     `json:"created_at"`
}

func (DoubtMessage) TableName() string {
	return "doubt_messages"
}
