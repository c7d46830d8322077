package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/career-service/internal/models"
)

func TestValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantRule  string
	}{
		{
			name:  "valid register",
			input: &models.RegisterRequest{Email: "a@b.com", Password: "pw"},
		},
		{
			name:      "bad email",
			input:     &models.RegisterRequest{Email: "nope", Password: "pw"},
			wantField: "email",
			wantRule:  "email",
		},
		{
			name:      "blank doubt title",
			input:     &models.CreateDoubtRequest{Title: "   ", Question: "why?"},
			wantField: "title",
			wantRule:  "notblank",
		},
		{
			name:      "missing question",
			input:     &models.CreateDoubtRequest{Title: "Go"},
			wantField: "question",
			wantRule:  "required",
		},
		{
			name:      "unknown sender",
			input:     &models.DoubtMessage{Sender: "admin", Message: "x"},
			wantField: "sender",
			wantRule:  "message_sender",
		},
		{
			name:  "mentor sender",
			input: &models.DoubtMessage{Sender: models.SenderMentor, Message: "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field)
			assert.Equal(t, tt.wantRule, verrs[0].Rule)
		})
	}
}

func TestBusinessValidator(t *testing.T) {
	bv := New().Business()

	t.Run("status filter", func(t *testing.T) {
		require.NotNil(t, bv.StatusFilter("open"))
		assert.Equal(t, models.DoubtResolved, *bv.StatusFilter("resolved"))
		assert.Nil(t, bv.StatusFilter(""))
		assert.Nil(t, bv.StatusFilter("closed"))
	})

	t.Run("notes", func(t *testing.T) {
		blank := "   "
		notes := "  fixed it "
		assert.Nil(t, bv.NormalizeNotes(nil))
		assert.Nil(t, bv.NormalizeNotes(&blank))
		assert.Equal(t, "fixed it", *bv.NormalizeNotes(&notes))
	})

	t.Run("ownership", func(t *testing.T) {
		doubt := &models.Doubt{ID: 1, UserID: 7}
		assert.Nil(t, bv.ValidateOwnership(doubt, 7))
		assert.Len(t, bv.ValidateOwnership(doubt, 8), 1)
	})
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "validation failed", ValidationErrors{}.Error())
	assert.Equal(t, "validation failed: title is required",
		ValidationErrors{{Field: "title", Message: "is required"}}.Error())
	assert.Equal(t, "validation failed: 2 field errors",
		ValidationErrors{{}, {}}.Error())
}
