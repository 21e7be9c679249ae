package models_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semsolhan1/todo-api202306/internal/models"
)

func TestTodoCreateRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantField string
	}{
		{name: "valid", title: "buy milk"},
		{name: "empty", title: "", wantField: "title"},
		{name: "whitespace only", title: "   ", wantField: "title"},
		{name: "exactly 50 runes", title: strings.Repeat("a", 50)},
		{name: "51 runes", title: strings.Repeat("a", 51), wantField: "title"},
		{name: "50 multibyte runes", title: strings.Repeat("할", 50)},
		{name: "51 multibyte runes", title: strings.Repeat("할", 51), wantField: "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.TodoCreateRequest{Title: tt.title}
			errs := req.Validate()
			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestTodoModifyRequestValidate(t *testing.T) {
	req := models.TodoModifyRequest{ID: "abc", Done: true}
	assert.Empty(t, req.Validate())

	blank := models.TodoModifyRequest{ID: "  "}
	errs := blank.Validate()
	require.NotEmpty(t, errs)
	assert.Equal(t, "id", errs[0].Field)
}

func TestUserSignUpRequestValidate(t *testing.T) {
	valid := models.UserSignUpRequest{Email: "abc@example.com", Password: "secret", UserName: "abc"}
	assert.Empty(t, valid.Validate())

	empty := models.UserSignUpRequest{}
	errs := empty.Validate()
	require.Len(t, errs, 3)
	assert.Equal(t, "email", errs[0].Field)

	badEmail := models.UserSignUpRequest{Email: "not-an-email", Password: "secret", UserName: "abc"}
	errs = badEmail.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)
}
