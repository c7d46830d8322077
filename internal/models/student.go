package models

import (
	"time"
)

// Student is the one-per-user profile form. All descriptive fields are free text.
type Student struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex"`

	Name                 string `json:"name" gorm:"not null;size:255"`
	Email                string `json:"email" gorm:"not null;size:255"`
	HighestQualification string `json:"highest_qualification" gorm:"size:255"`
	FieldOfStudy         string `json:"field_of_study" gorm:"size:255"`
	KnownSkills          string `json:"known_skills" gorm:"type:text"`
	CareerInterests      string `json:"career_interests" gorm:"type:text"`
	ExpectedSalary       string `json:"expected_salary" gorm:"size:50"`
	PreferredJobLocation string `json:"preferred_job_location" gorm:"size:255"`
	Strengths            string `json:"strengths" gorm:"type:text"`
	LongTermGoals        string `json:"long_term_goals" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}

// StudentProfile is a student row joined with the owning account. The account
// email shadows the form email in JSON output.
type StudentProfile struct {
	Student
	AccountEmail string `json:"email" gorm:"column:account_email"`
}

// ProfileFields returns the profile as ordered label/value pairs for prompts and exports.
func (s *Student) ProfileFields() []ProfileField {
	return []ProfileField{
		{Key: "name", Label: "Name", Value: s.Name},
		{Key: "email", Label: "Email", Value: s.Email},
		{Key: "highest_qualification", Label: "Qualification", Value: s.HighestQualification},
		{Key: "field_of_study", Label: "Field of Study", Value: s.FieldOfStudy},
		{Key: "known_skills", Label: "Skills", Value: s.KnownSkills},
		{Key: "career_interests", Label: "Career Interests", Value: s.CareerInterests},
		{Key: "expected_salary", Label: "Expected Salary", Value: s.ExpectedSalary},
		{Key: "preferred_job_location", Label: "Preferred Job Location", Value: s.PreferredJobLocation},
		{Key: "strengths", Label: "Strengths", Value: s.Strengths},
		{Key: "long_term_goals", Label: "Goals", Value: s.LongTermGoals},
	}
}

type ProfileField struct {
	Key   string
	Label string
	Value string
}
