package filter_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitor-backend/internal/filter"
)

type row struct {
	ID     int
	Name   string
	Email  string
	Status string
	Date   string
}

func rowName(r row) string   { return r.Name }
func rowEmail(r row) string  { return r.Email }
func rowStatus(r row) string { return r.Status }
func rowDate(r row) string   { return r.Date }

func TestApply(t *testing.T) {
	rows := []row{
		{ID: 1, Name: "Mike Johnson", Email: "mike@example.com", Status: "approved", Date: "2024-01-15"},
		{ID: 2, Name: "Sarah Wilson", Email: "sarah@example.com", Status: "pending", Date: "2024-01-16"},
		{ID: 3, Name: "David Chen", Email: "david@email.com", Status: "expired", Date: "2024-01-16"},
	}

	t.Run("NoPredicates_ReturnsAll", func(t *testing.T) {
		assert.Equal(t, rows, filter.Apply(rows))
	})

	t.Run("EmptyTerms_AreIgnored", func(t *testing.T) {
		got := filter.Apply(rows,
			filter.Search("", rowName, rowEmail),
			filter.Equal("", rowStatus),
			filter.Contains("", rowDate),
		)
		assert.Equal(t, rows, got)
	})

	t.Run("Search_AnyFieldCaseInsensitive", func(t *testing.T) {
		got := filter.Apply(rows, filter.Search("EMAIL.COM", rowName, rowEmail))
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].ID)
	})

	t.Run("Equal_IgnoresCase", func(t *testing.T) {
		got := filter.Apply(rows, filter.Equal("Pending", rowStatus))
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].ID)
	})

	t.Run("Equal_IsNotSubstring", func(t *testing.T) {
		assert.Empty(t, filter.Apply(rows, filter.Equal("pend", rowStatus)))
	})

	t.Run("AllPredicatesMustHold", func(t *testing.T) {
		got := filter.Apply(rows,
			filter.Contains("01-16", rowDate),
			filter.Equal("expired", rowStatus),
		)
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].ID)
	})

	t.Run("NoMatch_ReturnsEmptyNotNil", func(t *testing.T) {
		got := filter.Apply(rows, filter.Search("nobody", rowName))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Run_ReportsCounts", func(t *testing.T) {
		res := filter.Run(rows, filter.Equal("approved", rowStatus))
		assert.Equal(t, 3, res.Total)
		assert.Equal(t, 1, res.Shown)
		assert.Len(t, res.Items, 1)
	})
}

// TestApplyRandomized checks Apply against a direct evaluation of the
// predicates over random records and random predicate sets.
func TestApplyRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"a", "B", "c", "D", "e", ""}
	word := func() string {
		var sb strings.Builder
		n := rng.Intn(4)
		for i := 0; i < n; i++ {
			sb.WriteString(alphabet[rng.Intn(len(alphabet))])
		}
		return sb.String()
	}

	for iter := 0; iter < 500; iter++ {
		rows := make([]row, rng.Intn(20))
		for i := range rows {
			rows[i] = row{ID: i, Name: word(), Email: word(), Status: word(), Date: word()}
		}
		search, status, date := word(), word(), word()

		got := filter.Apply(rows,
			filter.Search(search, rowName, rowEmail),
			filter.Equal(status, rowStatus),
			filter.Contains(date, rowDate),
		)

		var want []row
		for _, r := range rows {
			okSearch := search == "" ||
				strings.Contains(strings.ToLower(r.Name), strings.ToLower(search)) ||
				strings.Contains(strings.ToLower(r.Email), strings.ToLower(search))
			okStatus := status == "" || strings.EqualFold(r.Status, status)
			okDate := date == "" || strings.Contains(strings.ToLower(r.Date), strings.ToLower(date))
			if okSearch && okStatus && okDate {
				want = append(want, r)
			}
		}

		require.Len(t, got, len(want), "iteration %d", iter)
		for i := range want {
			assert.Equal(t, want[i].ID, got[i].ID, "iteration %d", iter)
		}
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1].ID, got[i].ID, "order must be preserved")
		}
	}
}
