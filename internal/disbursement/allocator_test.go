package disbursement_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"posobra-painel/internal/disbursement"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(dec(want)), "esperado %s, veio %s", want, got)
}

func TestAllocateBridgeScenario(t *testing.T) {
	entries := []disbursement.Entry{
		{Month: "01/2025", Pct: dec("50")},
		{Month: "02/2025", Pct: dec("50")},
	}

	out := disbursement.Allocate(dec("100000"), entries)

	require.Len(t, out, 2)
	requireDecimal(t, "50000.00", out[0].Amount)
	requireDecimal(t, "50000.00", out[1].Amount)
	requireDecimal(t, "50", out[0].Pct)
}

func TestNormalizeSumAlready100(t *testing.T) {
	// Park: 33+33+34 soma 100, nada é reescalonado
	entries := []disbursement.Entry{
		{Month: "01/2025", Pct: dec("33")},
		{Month: "02/2025", Pct: dec("33")},
		{Month: "03/2025", Pct: dec("34")},
	}

	out := disbursement.Normalize(entries)

	requireDecimal(t, "33", out[0])
	requireDecimal(t, "33", out[1])
	requireDecimal(t, "34", out[2])
}

func TestNormalizeRescales(t *testing.T) {
	entries := []disbursement.Entry{
		{Month: "01/2025", Pct: dec("30")},
		{Month: "02/2025", Pct: dec("30")},
	}

	out := disbursement.Normalize(entries)

	requireDecimal(t, "50", out[0])
	requireDecimal(t, "50", out[1])
}

func TestNormalizeSumWithinTolerance(t *testing.T) {
	cases := [][]string{
		{"33.3", "33.3", "33.3"},
		{"1", "1", "1"},
		{"12.7", "45.9", "3.14", "88"},
		{"120", "80"},
	}
	tolerance := dec("0.1")

	for _, raw := range cases {
		entries := make([]disbursement.Entry, len(raw))
		for i, p := range raw {
			entries[i] = disbursement.Entry{Month: "01/2025", Pct: dec(p)}
		}

		sum := decimal.Zero
		for _, p := range disbursement.Normalize(entries) {
			sum = sum.Add(p)
		}
		drift := sum.Sub(dec("100")).Abs()
		require.True(t, drift.LessThanOrEqual(tolerance),
			"soma normalizada %s fora da tolerância para %v", sum, raw)
	}
}

func TestAllocateZeroBudget(t *testing.T) {
	entries := []disbursement.Entry{
		{Month: "01/2025", Pct: dec("60")},
		{Month: "02/2025", Pct: dec("40")},
	}

	out := disbursement.Allocate(decimal.Zero, entries)

	for _, a := range out {
		requireDecimal(t, "0", a.Amount)
	}
}

func TestMonths(t *testing.T) {
	start := time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)

	require.Equal(t, []string{"11/2024", "12/2024", "01/2025", "02/2025"}, disbursement.Months(start, end))

	// término antes do início não tem meses
	require.Nil(t, disbursement.Months(end, start))
}

func TestDefaultScheduleUniformSplit(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	entries := disbursement.DefaultSchedule(start, end)

	require.Len(t, entries, 3)
	for _, e := range entries {
		requireDecimal(t, "33.3", e.Pct)
	}
}

func TestConsolidate(t *testing.T) {
	projects := []disbursement.ProjectSchedule{
		{
			ID: "a", Name: "Ponte", Budget: dec("100000"),
			Entries: []disbursement.Entry{
				{Month: "01/2025", Pct: dec("50")},
				{Month: "02/2025", Pct: dec("50")},
			},
		},
		{
			ID: "b", Name: "Praça", Budget: dec("60000"),
			Entries: []disbursement.Entry{
				{Month: "02/2025", Pct: dec("50")},
				{Month: "03/2025", Pct: dec("50")},
			},
		},
	}

	out := disbursement.Consolidate(projects)

	require.Len(t, out.Totals, 3)
	require.Equal(t, "01/2025", out.Totals[0].Month)
	requireDecimal(t, "50000.00", out.Totals[0].Total)
	require.Equal(t, "02/2025", out.Totals[1].Month)
	requireDecimal(t, "80000.00", out.Totals[1].Total)
	require.Equal(t, "03/2025", out.Totals[2].Month)
	requireDecimal(t, "30000.00", out.Totals[2].Total)

	// participação em 02/2025: 50000/80000 e 30000/80000
	var shares []disbursement.Share
	for _, s := range out.Breakdown {
		if s.Month == "02/2025" {
			shares = append(shares, s)
		}
	}
	require.Len(t, shares, 2)
	requireDecimal(t, "62.5", shares[0].SharePct)
	requireDecimal(t, "37.5", shares[1].SharePct)
}

func TestConsolidateZeroMonthTotal(t *testing.T) {
	projects := []disbursement.ProjectSchedule{
		{
			ID: "a", Name: "Ponte", Budget: decimal.Zero,
			Entries: []disbursement.Entry{{Month: "01/2025", Pct: dec("100")}},
		},
	}

	out := disbursement.Consolidate(projects)

	require.Len(t, out.Breakdown, 1)
	requireDecimal(t, "0", out.Breakdown[0].SharePct)
}
