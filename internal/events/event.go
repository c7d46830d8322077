package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "career-service"
	EventVersion = "1.0"
)

type EventType string

const (
	ProfileSubmitted EventType = "profile.submitted"
	ProfileUpdated   EventType = "profile.updated"
	ProfileDeleted   EventType = "profile.deleted"
	SummaryGenerated EventType = "career.summary_generated"
	DoubtCreated     EventType = "doubt.created"
	DoubtReplied     EventType = "doubt.replied"
	DoubtResolved    EventType = "doubt.resolved"
)

// Event is the envelope published for every domain change.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	UserID    uint        `json:"user_id"`
	Data      interface{} `json:"data,omitempty"`
}

func NewEvent(eventType EventType, userID uint, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Data:      data,
	}
}

type ProfileEventData struct {
	StudentID uint `json:"student_id"`
}

type SummaryEventData struct {
	SummaryID uint `json:"summary_id"`
	Cached    bool `json:"cached"`
}

type DoubtEventData struct {
	DoubtID   uint   `json:"doubt_id"`
	Title     string `json:"title,omitempty"`
	UsedAI    bool   `json:"used_ai,omitempty"`
	AIFailed  bool   `json:"ai_failed,omitempty"`
	HasNotes  bool   `json:"has_notes,omitempty"`
	MessageID uint   `json:"message_id,omitempty"`
}
