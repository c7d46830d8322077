package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SAP-F-2025/career-service/internal/models"
)

func TestCareerSummaryPrompt(t *testing.T) {
	prompt := CareerSummaryPrompt(&models.Student{Name: "Asha", KnownSkills: "Go, SQL"})
	assert.Contains(t, prompt, "Name: Asha")
	assert.Contains(t, prompt, "Skills: Go, SQL")
	assert.Contains(t, prompt, "Keep response under 100 words.")
}

func TestChatbotPrompt(t *testing.T) {
	profile := &models.StudentProfile{
		Student:      models.Student{Name: "Asha", Email: "form@x.com"},
		AccountEmail: "account@x.com",
	}
	prompt := ChatbotPrompt(profile, "Should I learn Go?")
	assert.Contains(t, prompt, "- Name: Asha")
	assert.Contains(t, prompt, "- Email: account@x.com")
	assert.Contains(t, prompt, "### Query:\nShould I learn Go?")
	assert.Contains(t, prompt, OffTopicReply)

	empty := ChatbotPrompt(nil, "hi")
	assert.Contains(t, empty, "- Name: \n")
}

func TestDoubtPrompts(t *testing.T) {
	thread := []models.DoubtMessage{
		{Sender: models.SenderUser, Message: "What is a goroutine?"},
		{Sender: models.SenderBot, Message: "A lightweight thread."},
	}
	assert.Equal(t, "user: What is a goroutine?\nbot: A lightweight thread.", FormatThread(thread))

	initial := InitialDoubtPrompt("Goroutines", thread[:1])
	assert.Contains(t, initial, "Doubt Title: Goroutines")
	assert.Contains(t, initial, "Thread So Far:\nuser: What is a goroutine?")
	assert.Contains(t, initial, "Do not ask follow-up questions for the initial doubt response")

	reply := DoubtReplyPrompt(nil, "Goroutines", thread, "And channels?")
	assert.Contains(t, reply, "Latest Question: And channels?")
	assert.Contains(t, reply, "Interests: \n")
	assert.NotContains(t, reply, "for the initial doubt response")
}
