package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

func TestValidator_FirstFailureWins(t *testing.T) {
	v := NewValidator()
	v.CheckEmail("")

	assert.False(t, v.Valid())
	assert.Equal(t, "must be provided", v.Errors["email"])
}

func TestValidator_Credentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		fields   []string
	}{
		{name: "ok", email: "john@example.com", password: "secret"},
		{name: "bad email", email: "not-an-email", password: "secret", fields: []string{"email"}},
		{name: "long email", email: strings.Repeat("a", 175) + "@x.com", password: "secret", fields: []string{"email"}},
		{name: "short password", email: "john@example.com", password: "12345", fields: []string{"password"}},
		{name: "password over bcrypt limit", email: "john@example.com", password: strings.Repeat("p", 73), fields: []string{"password"}},
		{name: "both", email: "", password: "", fields: []string{"email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator()
			v.CheckEmail(tt.email)
			v.CheckPassword(tt.password)

			if len(tt.fields) == 0 {
				assert.True(t, v.Valid())
				assert.NoError(t, v.Err())
				return
			}
			require.Error(t, v.Err())
			assert.ErrorIs(t, v.Err(), types.ErrInvalidArgument)
			for _, f := range tt.fields {
				assert.Contains(t, v.Errors, f)
			}
		})
	}
}

func TestValidator_TaskFields(t *testing.T) {
	long := strings.Repeat("é", types.TaskTitleMaxLength+1)
	okTitle := strings.Repeat("é", types.TaskTitleMaxLength)
	desc := strings.Repeat("d", types.TaskDescriptionMaxLength+1)
	bad := types.TaskStatus("archived")

	v := NewValidator()
	v.CheckTitle(okTitle)
	assert.True(t, v.Valid(), "title length counts characters, not bytes")

	v = NewValidator()
	v.CheckTitle(long)
	v.CheckDescription(&desc)
	v.CheckStatus(&bad)
	v.CheckName(nil)

	err := v.Err()
	require.Error(t, err)
	assert.Equal(t, "invalid argument: description must be at most 3000 characters long; status must be one of pending, in_progress, completed; title must be at most 120 characters long", err.Error())
}
