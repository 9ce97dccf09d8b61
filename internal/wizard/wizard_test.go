package wizard

import (
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbsecret/kbsecret/internal/record"
)

type mockPrompter struct {
	answers map[string]interface{}
	calls   []string
	errAt   string
}

func (m *mockPrompter) Input(label, _ string, _ survey.Validator) (string, error) {
	m.calls = append(m.calls, "input:"+label)
	if m.errAt == label {
		return "", ErrCancelled
	}
	if v, ok := m.answers[label]; ok {
		return fmt.Sprintf("%v", v), nil
	}
	return "", nil
}

func (m *mockPrompter) Password(label string) (string, error) {
	m.calls = append(m.calls, "password:"+label)
	if m.errAt == label {
		return "", ErrCancelled
	}
	if v, ok := m.answers[label]; ok {
		return fmt.Sprintf("%v", v), nil
	}
	return "", nil
}

func (m *mockPrompter) Confirm(label string, def bool) (bool, error) {
	m.calls = append(m.calls, "confirm:"+label)
	if m.errAt == label {
		return false, ErrCancelled
	}
	if v, ok := m.answers[label]; ok {
		if b, ok := v.(bool); ok {
			return b, nil
		}
	}
	return def, nil
}

func TestValidateNonEmpty(t *testing.T) {
	assert.NoError(t, ValidateNonEmpty("x"))
	assert.Error(t, ValidateNonEmpty("   "))
}

func TestPromptFields_HidesSensitive(t *testing.T) {
	mock := &mockPrompter{answers: map[string]interface{}{
		"Username?": "alice",
		"Password?": "hunter2",
	}}

	values, err := PromptFields(mock, record.LoginSchema, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "hunter2"}, values)
	assert.Equal(t, []string{"input:Username?", "password:Password?"}, mock.calls)
}

func TestPromptFields_Echo(t *testing.T) {
	mock := &mockPrompter{}
	_, err := PromptFields(mock, record.LoginSchema, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"input:Username?", "input:Password?"}, mock.calls)
}

func TestPromptFields_Preset(t *testing.T) {
	mock := &mockPrompter{answers: map[string]interface{}{"Username?": "alice"}}
	values, err := PromptFields(mock, record.LoginSchema, false, map[string]string{"password": "generated"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "generated"}, values)
	assert.Equal(t, []string{"input:Username?"}, mock.calls)
}

func TestPromptFields_Cancelled(t *testing.T) {
	mock := &mockPrompter{errAt: "Value?"}
	_, err := PromptFields(mock, record.EnvironmentSchema, false, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Contains(t, err.Error(), "prompting for value")
}

func TestConfirmRemoval(t *testing.T) {
	mock := &mockPrompter{answers: map[string]interface{}{"Delete a, b?": true}}
	ok, err := ConfirmRemoval(mock, []string{"a", "b"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ConfirmRemoval(mock, []string{"c"})
	require.NoError(t, err)
	assert.False(t, ok)
}
