package ai

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/career-service/internal/models"
)

const OffTopicReply = "I'm here to assist only with career development. Please ask questions related to your professional growth."

// CareerSummaryPrompt asks for short career recommendations for a profile.
func CareerSummaryPrompt(student *models.Student) string {
	var sb strings.Builder
	sb.WriteString("Analyze this student profile and provide career recommendations:\n")
	for _, f := range student.ProfileFields() {
		fmt.Fprintf(&sb, "%s: %s\n", f.Label, f.Value)
	}
	sb.WriteString("Focus on matching skills to industries. Keep response under 100 words.\n")
	return sb.String()
}

// ChatbotPrompt wraps a free-form question with the profile and the career-only guidelines.
// A nil profile yields an empty profile block.
func ChatbotPrompt(profile *models.StudentProfile, message string) string {
	p := profileOrEmpty(profile)

	var sb strings.Builder
	sb.WriteString("### User Profile:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", p.Name)
	fmt.Fprintf(&sb, "- Email: %s\n", p.AccountEmail)
	fmt.Fprintf(&sb, "- Qualification: %s\n", p.HighestQualification)
	fmt.Fprintf(&sb, "- Field of Study: %s\n", p.FieldOfStudy)
	fmt.Fprintf(&sb, "- Skills: %s\n", p.KnownSkills)
	fmt.Fprintf(&sb, "- Career Interests: %s\n", p.CareerInterests)
	fmt.Fprintf(&sb, "- Strengths: %s\n", p.Strengths)
	fmt.Fprintf(&sb, "- Goals: %s\n\n", p.LongTermGoals)

	sb.WriteString("### Query:\n")
	sb.WriteString(message)
	sb.WriteString("\n\n### Response Guidelines:\n")
	sb.WriteString("1. Only respond to queries related to career development, education, skills, or professional growth.\n")
	fmt.Fprintf(&sb, "2. If the query is **not relevant to career** (e.g., personal questions, jokes, casual talk), respond with:\n     - %q\n", OffTopicReply)
	sb.WriteString("3. Do not mention user's profile unless relevant to the career question.\n")
	sb.WriteString("4. Keep responses concise (under 100 words), professional, and helpful.\n")
	sb.WriteString("5. Avoid any unrelated, personal, or humorous responses.\n")
	return sb.String()
}

const mentorIntro = "You are an expert academic mentor for students. Answer clearly, step-by-step, and in GitHub-Flavored Markdown.\n\n"

// InitialDoubtPrompt asks for a first direct answer to a new doubt.
func InitialDoubtPrompt(title string, thread []models.DoubtMessage) string {
	var sb strings.Builder
	sb.WriteString(mentorIntro)
	fmt.Fprintf(&sb, "Doubt Title: %s\n", title)
	sb.WriteString("Thread So Far:\n")
	sb.WriteString(FormatThread(thread))
	sb.WriteString("\n\nResponse rules:\n")
	sb.WriteString("- Output strictly in Markdown (use headings, lists, code blocks when helpful).\n")
	sb.WriteString("- Keep responses under 150 words.\n")
	sb.WriteString("- Do not ask follow-up questions for the initial doubt response; provide your best direct answer.\n")
	sb.WriteString("- Be professional and encouraging.\n")
	return sb.String()
}

// DoubtReplyPrompt asks for a follow-up answer given the profile and recent thread.
func DoubtReplyPrompt(profile *models.StudentProfile, title string, recent []models.DoubtMessage, latest string) string {
	p := profileOrEmpty(profile)

	var sb strings.Builder
	sb.WriteString(mentorIntro)
	sb.WriteString("Student Profile:\n")
	fmt.Fprintf(&sb, "Name: %s\n", p.Name)
	fmt.Fprintf(&sb, "Email: %s\n", p.AccountEmail)
	fmt.Fprintf(&sb, "Qualification: %s\n", p.HighestQualification)
	fmt.Fprintf(&sb, "Field of Study: %s\n", p.FieldOfStudy)
	fmt.Fprintf(&sb, "Skills: %s\n", p.KnownSkills)
	fmt.Fprintf(&sb, "Interests: %s\n", p.CareerInterests)
	fmt.Fprintf(&sb, "Strengths: %s\n", p.Strengths)
	fmt.Fprintf(&sb, "Goals: %s\n\n", p.LongTermGoals)
	fmt.Fprintf(&sb, "Doubt Title: %s\n", title)
	sb.WriteString("Thread So Far:\n")
	sb.WriteString(FormatThread(recent))
	fmt.Fprintf(&sb, "\n\nLatest Question: %s\n\n", latest)
	sb.WriteString("Response rules:\n")
	sb.WriteString("- Output strictly in Markdown (use headings, lists, code blocks when helpful).\n")
	sb.WriteString("- Keep responses under 150 words.\n")
	sb.WriteString("- Do not ask follow-up questions; provide your best direct answer.\n")
	sb.WriteString("- Be professional and encouraging.\n")
	return sb.String()
}

// FormatThread renders messages as "sender: message" lines.
func FormatThread(messages []models.DoubtMessage) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Sender, m.Message))
	}
	return strings.Join(lines, "\n")
}

func profileOrEmpty(profile *models.StudentProfile) *models.StudentProfile {
	if profile == nil {
		return &models.StudentProfile{}
	}
	return profile
}
