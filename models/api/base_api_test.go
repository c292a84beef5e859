package apimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshalTolerant(t *testing.T) {
	type payload struct {
		ProjectID string `json:"project_id"`
		ClockIn   string `json:"clock_in"`
		Note      string `json:"note"`
	}

	t.Run(`ключи в snake_case`, func(t *testing.T) {
		out := payload{}
		err := UnmarshalTolerant([]byte(`{"project_id":"p-1","clock_in":"2025-03-14T08:00:00Z"}`), &out)
		require.Nil(t, err)
		require.Equal(t, "p-1", out.ProjectID)
		require.Equal(t, "2025-03-14T08:00:00Z", out.ClockIn)
	})

	t.Run(`ключи в camelCase`, func(t *testing.T) {
		out := payload{}
		err := UnmarshalTolerant([]byte(`{"projectId":"p-1","clockIn":"2025-03-14T08:00:00Z","note":"смена"}`), &out)
		require.Nil(t, err)
		require.Equal(t, "p-1", out.ProjectID)
		require.Equal(t, "2025-03-14T08:00:00Z", out.ClockIn)
		require.Equal(t, "смена", out.Note)
	})

	t.Run(`не объект разбирается как есть`, func(t *testing.T) {
		out := []string{}
		err := UnmarshalTolerant([]byte(`["a","b"]`), &out)
		require.Nil(t, err)
		require.Equal(t, []string{"a", "b"}, out)
	})
}

func TestPagination(t *testing.T) {
	t.Run(`значения по умолчанию`, func(t *testing.T) {
		page, limit := Pagination{}.GetPage()
		require.Equal(t, 1, page)
		require.Equal(t, 10, limit)
	})

	t.Run(`лимит ограничен сотней`, func(t *testing.T) {
		page, limit := Pagination{Page: 3, Limit: 500}.GetPage()
		require.Equal(t, 3, page)
		require.Equal(t, 100, limit)
	})
}
