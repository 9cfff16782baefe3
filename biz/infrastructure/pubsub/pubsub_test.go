package pubsub

import (
	"context"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordSink struct {
	channels []string
	events   []string
	data     [][]byte
}

func (s *recordSink) Dispatch(channel, event string, data []byte) {
	s.channels = append(s.channels, channel)
	s.events = append(s.events, event)
	s.data = append(s.data, data)
}

func TestLocalPublisher(t *testing.T) {
	sink := &recordSink{}
	p := NewLocalPublisher(sink)

	err := p.Publish(context.Background(), "room-1", "upcoming-message", map[string]string{"content": "hi"})
	require.NoError(t, err)

	assert.Equal(t, []string{"room-1"}, sink.channels)
	assert.Equal(t, []string{"upcoming-message"}, sink.events)
	var got map[string]string
	require.NoError(t, sonic.Unmarshal(sink.data[0], &got))
	assert.Equal(t, "hi", got["content"])
}

func TestEncodeEnvelope(t *testing.T) {
	payload, err := encode("unread-messages", map[string]string{"roomId": "r1"})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, sonic.Unmarshal(payload, &env))
	assert.Equal(t, "unread-messages", env.Event)
	assert.JSONEq(t, `{"roomId":"r1"}`, string(env.Data))
}
