package user

import (
	"context"
	"testing"

	"learnhub/biz/infrastructure/consts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMapperRefs(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryMapper()
	a := &User{ExternalID: "a"}
	b := &User{ExternalID: "b"}
	require.NoError(t, m.Insert(ctx, a))
	require.NoError(t, m.Insert(ctx, b))
	assert.ErrorIs(t, m.Insert(ctx, &User{ExternalID: "a"}), consts.ErrDuplicate)

	for _, u := range []*User{a, b} {
		require.NoError(t, m.Push(ctx, u.ID.Hex(), FieldJoinedChatRooms, "room-1"))
		require.NoError(t, m.Push(ctx, u.ID.Hex(), FieldJoinedChatRooms, "room-1"))
	}
	got, err := m.FindOneByExternalID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"room-1"}, got.JoinedChatRooms)

	require.NoError(t, m.PullFromAll(ctx, FieldJoinedChatRooms, "room-1"))
	got, err = m.FindOne(ctx, b.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, got.JoinedChatRooms)

	assert.ErrorIs(t, m.Push(ctx, a.ID.Hex(), "unknown", "x"), consts.ErrInvalidParams)
	_, err = m.FindOne(ctx, "bad")
	assert.ErrorIs(t, err, consts.ErrInvalidObjectId)
}

func TestMemoryMapperCreditWallet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryMapper()
	u := &User{ExternalID: "a"}
	require.NoError(t, m.Insert(ctx, u))

	for _, pid := range []string{"p1", "p2", "p1"} {
		_, err := m.CreditWallet(ctx, u.ID.Hex(), pid, 45)
		require.NoError(t, err)
	}
	credited, err := m.CreditWallet(ctx, u.ID.Hex(), "p2", 45)
	require.NoError(t, err)
	assert.False(t, credited)

	got, err := m.FindOne(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.InDelta(t, 90, got.Wallet, 1e-9)
	assert.Equal(t, []string{"p1", "p2"}, got.CreditedPurchases)

	_, err = m.CreditWallet(ctx, "bad", "p3", 1)
	assert.ErrorIs(t, err, consts.ErrInvalidObjectId)
}

func TestMemoryMapperUpdateKeepsWalletAndRefs(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryMapper()
	u := &User{ExternalID: "a", Username: "old"}
	require.NoError(t, m.Insert(ctx, u))

	stale, err := m.FindOne(ctx, u.ID.Hex())
	require.NoError(t, err)
	_, err = m.CreditWallet(ctx, u.ID.Hex(), "p1", 90)
	require.NoError(t, err)
	require.NoError(t, m.Push(ctx, u.ID.Hex(), FieldJoinedChatRooms, "room-1"))

	stale.Username = "new"
	stale.Interests = []string{"go"}
	require.NoError(t, m.Update(ctx, stale))

	got, err := m.FindOne(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "new", got.Username)
	assert.Equal(t, []string{"go"}, got.Interests)
	assert.InDelta(t, 90, got.Wallet, 1e-9)
	assert.Equal(t, []string{"room-1"}, got.JoinedChatRooms)
	assert.Equal(t, []string{"p1"}, got.CreditedPurchases)
}
