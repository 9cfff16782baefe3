package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendGridPrepare(t *testing.T) {
	s := NewSendGridSender("key", "LearnHub", "noreply@learnhub.dev")
	m := s.prepare(EnrollmentMessage("Ann", "ann@example.com", "Go 101"))

	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "[LearnHub] You are enrolled in Go 101", m.Personalizations[0].Subject)
	require.Len(t, m.Personalizations[0].To, 1)
	assert.Equal(t, "ann@example.com", m.Personalizations[0].To[0].Address)
	assert.Equal(t, "noreply@learnhub.dev", m.From.Address)
	assert.Len(t, m.Content, 2)
}

func TestConsoleSender(t *testing.T) {
	s := NewConsoleSender("LearnHub")
	assert.NoError(t, s.Send(context.Background(), EnrollmentMessage("Ann", "ann@example.com", "Go 101")))
}
