package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	req := Request{}.Normalize()
	require.Equal(t, DefaultPage, req.Page)
	require.Equal(t, DefaultPageSize, req.PageSize)

	req = Request{Page: -3, PageSize: 0}.Normalize()
	require.Equal(t, 1, req.Page)
	require.Equal(t, 10, req.PageSize)
}

func TestOffset(t *testing.T) {
	require.Equal(t, 0, Request{Page: 1, PageSize: 10}.Offset())
	require.Equal(t, 20, Request{Page: 3, PageSize: 10}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Request{Page: 2, PageSize: 10}, 35)
	require.Equal(t, 2, meta.CurrentPage)
	require.Equal(t, 4, meta.TotalPages)
	require.Equal(t, int64(35), meta.TotalCount)
	require.True(t, meta.HasNext)
	require.True(t, meta.HasPrev)

	meta = NewMeta(Request{Page: 4, PageSize: 10}, 35)
	require.False(t, meta.HasNext)
	require.True(t, meta.HasPrev)

	meta = NewMeta(Request{Page: 1, PageSize: 10}, 0)
	require.Equal(t, 0, meta.TotalPages)
	require.False(t, meta.HasNext)
	require.False(t, meta.HasPrev)
}
