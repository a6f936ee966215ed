package player

import (
	"math"
	"testing"
	"time"
)

var evaluationTime = time.Date(2026, 5, 15, 9, 30, 0, 0, time.UTC)

func yearsAgo(years int) time.Time {
	return evaluationTime.AddDate(-years, 0, 0)
}

func monthsAhead(months int) *time.Time {
	end := evaluationTime.AddDate(0, months, 0)
	return &end
}

func TestEvaluateWorkedExample(t *testing.T) {
	p := Player{
		DateOfBirth:     yearsAgo(20),
		Position:        PositionStriker,
		ContractEndDate: monthsAhead(40),
		Statistics: []SeasonStatistic{
			{Season: "2024/25", Goals: 10, Assists: 5, MinutesPlayed: 2000},
		},
	}

	v := Evaluate(p, evaluationTime)
	if v.Age != 20 {
		t.Fatalf("age = %d, want 20", v.Age)
	}
	if v.BaseValue != 100000 {
		t.Fatalf("base = %d, want 100000", v.BaseValue)
	}
	if diff := v.PerformanceMultiplier - 2.2; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("performance multiplier = %v, want 2.2", v.PerformanceMultiplier)
	}
	if v.PositionMultiplier != 1.2 || v.ContractMultiplier != 1.1 {
		t.Fatalf("multipliers = %v/%v, want 1.2/1.1", v.PositionMultiplier, v.ContractMultiplier)
	}
	if v.MarketValue != 290000 {
		t.Fatalf("market value = %d, want 290000", v.MarketValue)
	}
}

func TestBaseValueByAgeBand(t *testing.T) {
	tests := []struct {
		age  int
		want int64
	}{
		{age: 17, want: 50000},
		{age: 19, want: 50000},
		{age: 20, want: 100000},
		{age: 22, want: 100000},
		{age: 24, want: 100000},
		{age: 25, want: 80000},
		{age: 29, want: 80000},
		{age: 30, want: 40000},
		{age: 32, want: 40000},
	}

	for _, tc := range tests {
		p := Player{DateOfBirth: yearsAgo(tc.age), Position: PositionCentreBack}
		if got := CalculateMarketValue(p, evaluationTime); got != tc.want {
			t.Fatalf("age %d: value = %d, want %d", tc.age, got, tc.want)
		}
	}
}

func TestAgeAtDecrementsBeforeBirthday(t *testing.T) {
	dob := time.Date(2000, 5, 16, 0, 0, 0, 0, time.UTC)
	if got := AgeAt(dob, evaluationTime); got != 25 {
		t.Fatalf("age day before birthday = %d, want 25", got)
	}
	if got := AgeAt(dob, evaluationTime.AddDate(0, 0, 1)); got != 26 {
		t.Fatalf("age on birthday = %d, want 26", got)
	}
}

func TestContractMultiplierBands(t *testing.T) {
	tests := []struct {
		months int
		want   float64
	}{
		{months: -3, want: 0.7},
		{months: 5, want: 0.7},
		{months: 6, want: 0.85},
		{months: 11, want: 0.85},
		{months: 12, want: 1.0},
		{months: 36, want: 1.0},
		{months: 37, want: 1.1},
	}

	for _, tc := range tests {
		p := Player{DateOfBirth: yearsAgo(26), Position: PositionLeftBack, ContractEndDate: monthsAhead(tc.months)}
		v := Evaluate(p, evaluationTime)
		if v.ContractMultiplier != tc.want {
			t.Fatalf("months %d: multiplier = %v, want %v", tc.months, v.ContractMultiplier, tc.want)
		}
		if v.ContractMonthsRemaining == nil || *v.ContractMonthsRemaining != tc.months {
			t.Fatalf("months %d: remaining = %v", tc.months, v.ContractMonthsRemaining)
		}
	}
}

func TestPositionMultiplier(t *testing.T) {
	for position := range AllPositions {
		want := 1.0
		switch position {
		case PositionStriker, PositionAttackingMidfielder:
			want = 1.2
		case PositionGoalkeeper:
			want = 0.9
		}
		if got := positionMultiplier(position); got != want {
			t.Fatalf("%s: multiplier = %v, want %v", position, got, want)
		}
	}
}

func TestMarketValueIsNonNegativeMultipleOfThousand(t *testing.T) {
	players := []Player{
		{DateOfBirth: yearsAgo(18), Position: PositionGoalkeeper},
		{DateOfBirth: yearsAgo(33), Position: PositionGoalkeeper, ContractEndDate: monthsAhead(2)},
		{DateOfBirth: yearsAgo(23), Position: PositionRightWinger, Statistics: []SeasonStatistic{{Season: "2025", Goals: 7, Assists: 3, MinutesPlayed: 1234}}},
		{DateOfBirth: yearsAgo(27), Position: PositionAttackingMidfielder, ContractEndDate: monthsAhead(9), Statistics: []SeasonStatistic{{Season: "x"}}},
		{},
	}

	for i, p := range players {
		got := CalculateMarketValue(p, evaluationTime)
		if got < 0 || got%1000 != 0 {
			t.Fatalf("player %d: value %d is not a non-negative multiple of 1000", i, got)
		}
	}
}

func TestMarketValueSaturatesForHugeCounters(t *testing.T) {
	modest := CalculateMarketValue(Player{
		DateOfBirth: yearsAgo(22),
		Position:    PositionStriker,
		Statistics:  []SeasonStatistic{{Season: "2025/26", Goals: 1000}},
	}, evaluationTime)

	for _, goals := range []int{2_000_000_000_000_000, 1 << 62, math.MaxInt} {
		p := Player{
			DateOfBirth: yearsAgo(22),
			Position:    PositionStriker,
			Statistics:  []SeasonStatistic{{Season: "2025/26", Goals: goals, Assists: goals, MinutesPlayed: goals}},
		}

		got := CalculateMarketValue(p, evaluationTime)
		if got < 0 || got%1000 != 0 {
			t.Fatalf("goals=%d: value %d is not a non-negative multiple of 1000", goals, got)
		}
		if got != maxThousands*1000 {
			t.Fatalf("goals=%d: value = %d, want saturated %d", goals, got, int64(maxThousands*1000))
		}
		if got < modest {
			t.Fatalf("goals=%d: value %d below modest season value %d", goals, got, modest)
		}
	}
}

func TestRoundToThousandHalfUp(t *testing.T) {
	tests := []struct {
		raw  float64
		want int64
	}{
		{raw: 290400, want: 290000},
		{raw: 290500, want: 291000},
		{raw: 499.99, want: 0},
		{raw: 500, want: 1000},
		{raw: -2500, want: 0},
		{raw: math.Inf(1), want: maxThousands * 1000},
		{raw: math.NaN(), want: 0},
	}

	for _, tc := range tests {
		if got := roundToThousand(tc.raw); got != tc.want {
			t.Fatalf("round(%v) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestEvaluateUsesLatestSeasonOnly(t *testing.T) {
	p := Player{
		DateOfBirth: yearsAgo(22),
		Position:    PositionCentralMidfielder,
		Statistics: []SeasonStatistic{
			{Season: "2024/25", Goals: 2},
			{Season: "2022/23", Goals: 40},
		},
	}

	v := Evaluate(p, evaluationTime)
	if v.LatestSeason != "2024/25" {
		t.Fatalf("latest season = %q, want 2024/25", v.LatestSeason)
	}
	if v.MarketValue != 115000 {
		t.Fatalf("market value = %d, want 115000", v.MarketValue)
	}
}
