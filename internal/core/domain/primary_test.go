package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryLabel(t *testing.T) {
	precedence := []string{"COURT", "JUDGE", "DATE"}

	tests := []struct {
		name   string
		labels []string
		want   string
	}{
		{"no labels", nil, ""},
		{"single", []string{"ORG"}, "ORG"},
		{"listed beats unlisted", []string{"ORG", "DATE"}, "DATE"},
		{"earlier precedence wins", []string{"DATE", "JUDGE", "COURT"}, "COURT"},
		{"unlisted tie is lexical", []string{"VEHICLE", "GPE", "ORG"}, "GPE"},
		{"order of input irrelevant", []string{"JUDGE", "DATE"}, "JUDGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrimaryLabel(tt.labels, precedence))
		})
	}
}

func TestPrimaryLabel_EmptyPrecedence(t *testing.T) {
	assert.Equal(t, "DATE", PrimaryLabel([]string{"ORG", "DATE", "JUDGE"}, nil))
}

func TestPrimaryLabel_DuplicateInPrecedence(t *testing.T) {
	precedence := []string{"DATE", "ORG", "DATE"}
	assert.Equal(t, "DATE", PrimaryLabel([]string{"ORG", "DATE"}, precedence))
}

func TestRenderConfig_PrimaryLabel(t *testing.T) {
	cfg := DefaultRenderConfig()
	assert.Equal(t, "CASE_NUMBER", cfg.PrimaryLabel([]string{"DATE", "CASE_NUMBER"}))
}
