package content

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(t *testing.T, m *SectionMemoryMapper, courseID string) []string {
	t.Helper()
	list, err := m.FindByParent(context.Background(), courseID)
	require.NoError(t, err)
	return lo.Map(list, func(s *Section, _ int) string { return s.Title })
}

func TestOrderedMemoryShift(t *testing.T) {
	ctx := context.Background()
	m := NewSectionMemoryMapper()
	ids := map[string]string{}
	for i, title := range []string{"A", "B", "C", "D"} {
		s := &Section{Title: title, CourseID: "c1", Position: int64(i + 1)}
		require.NoError(t, m.Insert(ctx, s))
		ids[title] = s.ID.Hex()
	}
	require.NoError(t, m.Insert(ctx, &Section{Title: "other", CourseID: "c2", Position: 1}))

	// 删除 B 后其后的同级前移
	require.NoError(t, m.Delete(ctx, ids["B"]))
	require.NoError(t, m.Shift(ctx, "c1", 3, 0, -1))
	list, err := m.FindByParent(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, lo.Map(list, func(s *Section, _ int) int64 { return s.Position }))
	assert.Equal(t, []string{"A", "C", "D"}, titles(t, m, "c1"))

	// D 移到最前
	require.NoError(t, m.Shift(ctx, "c1", 1, 2, 1))
	require.NoError(t, m.SetPosition(ctx, ids["D"], 1))
	assert.Equal(t, []string{"D", "A", "C"}, titles(t, m, "c1"))

	n, err := m.Count(ctx, "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	other, err := m.FindByParent(ctx, "c2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, other[0].Position)

	deleted, err := m.DeleteByParent(ctx, "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, deleted)
	assert.Empty(t, titles(t, m, "c1"))
}

func TestSectionMemoryRefs(t *testing.T) {
	ctx := context.Background()
	m := NewSectionMemoryMapper()
	s := &Section{Title: "A", CourseID: "c1", Position: 1}
	require.NoError(t, m.Insert(ctx, s))

	require.NoError(t, m.Push(ctx, s.ID.Hex(), FieldVideos, "v1"))
	require.NoError(t, m.Push(ctx, s.ID.Hex(), FieldVideos, "v1"))
	require.NoError(t, m.Push(ctx, s.ID.Hex(), FieldAttachments, "a1"))
	require.NoError(t, m.SetPosition(ctx, s.ID.Hex(), 3))

	got, err := m.FindOne(ctx, s.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, got.Videos)
	assert.Equal(t, []string{"a1"}, got.Attachments)
	assert.EqualValues(t, 3, got.Position)

	require.NoError(t, m.Pull(ctx, s.ID.Hex(), FieldVideos, "v1"))
	got, err = m.FindOne(ctx, s.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, got.Videos)
}
