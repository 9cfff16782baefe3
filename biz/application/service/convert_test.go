package service

import (
	"testing"
	"time"

	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/repository/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToDTOConvertsIDsAndTimes(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	m := &chat.Message{
		ID:         primitive.NewObjectID(),
		RoomID:     "room-1",
		Content:    "hi",
		CreateTime: now,
	}

	d := toDTO[core.Message](m)
	require.NotNil(t, d)
	assert.Equal(t, m.ID.Hex(), d.ID)
	assert.Equal(t, "room-1", d.RoomID)
	assert.Equal(t, now.UnixMilli(), d.CreateTime)

	assert.Nil(t, toDTO[core.Message]((*chat.Message)(nil)))
	assert.Len(t, toDTOs[core.Message]([]*chat.Message{m, m}), 2)
}
