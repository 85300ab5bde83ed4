package treasury_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chapterhq/portal-server/treasury"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
		errs   bool
	}{
		{amount: "12.34", want: 1234},
		{amount: " 12.34 ", want: 1234},
		{amount: "$1,234.56", want: 123456},
		{amount: "-45", want: -4500},
		{amount: "(45.00)", want: -4500},
		{amount: "($1,000.00)", want: -100000},
		{amount: "-$3.50", want: -350},
		{amount: "0", want: 0},
		{amount: "0.999", want: 100},
		{amount: "", errs: true},
		{amount: "twelve", errs: true},
		{amount: "$", errs: true},
	}
	for _, tc := range tests {
		t.Run(tc.amount, func(t *testing.T) {
			got, err := treasury.ParseAmount(tc.amount)
			if tc.errs {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestRules_Categorize(t *testing.T) {
	rules := treasury.Rules{Categories: []treasury.Rule{
		{Match: "venmo", Category: "dues"},
		{Match: "catering", Category: "events"},
		{Match: "ca", Category: "misc"},
	}}

	require.Equal(t, "dues", rules.Categorize("VENMO payment from member", ""))
	require.Equal(t, "events", rules.Categorize("Joe's Catering invoice", ""), "first matching rule wins")
	require.Equal(t, treasury.DefaultCategory, rules.Categorize("bank interest", ""))
	require.Equal(t, "manual", rules.Categorize("VENMO payment", " Manual "), "explicit category wins and is lowercased")
	require.Equal(t, treasury.DefaultCategory, treasury.Rules{}.Categorize("anything", ""))
}

func TestNormalize(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	rules := treasury.Rules{Categories: []treasury.Rule{{Match: "dues", Category: "dues"}}}

	rows := []treasury.RawRow{
		{Date: "2026-03-01", Description: " Member dues ", Amount: "$25.00"},
		{Date: "2026-03-02", Description: "Supplies", Amount: "(10.50)", Category: "Events"},
		{Date: "2026-03-03", Description: "", Amount: "5.00"},
		{Date: "2026-03-04", Description: "Bad amount", Amount: "n/a"},
	}

	got := treasury.Normalize(rows, rules, "treasurer@x.org", now)
	require.Len(t, got, 2, "rows without a description or a parsable amount are dropped")

	require.Equal(t, "Member dues", got[0].Description)
	require.Equal(t, int64(2500), got[0].AmountCents)
	require.Equal(t, "dues", got[0].Category)
	require.Equal(t, "treasurer@x.org", got[0].Source)
	require.Equal(t, now, got[0].CreatedAt)
	require.NotEmpty(t, got[0].ID)

	require.Equal(t, int64(-1050), got[1].AmountCents)
	require.Equal(t, "events", got[1].Category)
}

func TestLoadRules(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		rules, err := treasury.LoadRules("")
		require.NoError(t, err)
		require.Empty(t, rules.Categories)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := treasury.LoadRules("/nonexistent/rules.yaml")
		require.Error(t, err)
	})
}
