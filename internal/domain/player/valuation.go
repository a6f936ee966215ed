package player

import (
	"math"
	"time"
)

// Valuation explains how a market value was derived.
type Valuation struct {
	Age                     int
	BaseValue               int64
	LatestSeason            string
	PerformanceMultiplier   float64
	PositionMultiplier      float64
	ContractMonthsRemaining *int
	ContractMultiplier      float64
	RawValue                float64
	MarketValue             int64
	EvaluatedAt             time.Time
}

// AgeAt returns whole years between dob and now by calendar comparison.
func AgeAt(dob, now time.Time) int {
	dob = dob.UTC()
	now = now.UTC()

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// MonthsUntil is the whole-month distance (year*12+month) from now to end. It is negative when end has passed.
func MonthsUntil(now, end time.Time) int {
	now = now.UTC()
	end = end.UTC()
	return (end.Year()*12 + int(end.Month())) - (now.Year()*12 + int(now.Month()))
}

func baseValueForAge(age int) int64 {
	switch {
	case age < 20:
		return 50000
	case age < 25:
		return 100000
	case age < 30:
		return 80000
	default:
		return 40000
	}
}

func performanceMultiplier(stat SeasonStatistic) float64 {
	return 1 + 0.05*(1.5*float64(stat.Goals)+float64(stat.Assists)) + 0.1*(float64(stat.MinutesPlayed)/1000)
}

func positionMultiplier(position Position) float64 {
	switch position {
	case PositionStriker, PositionAttackingMidfielder:
		return 1.2
	case PositionGoalkeeper:
		return 0.9
	default:
		return 1.0
	}
}

func contractMultiplier(months int) float64 {
	switch {
	case months < 6:
		return 0.7
	case months < 12:
		return 0.85
	case months > 36:
		return 1.1
	default:
		return 1.0
	}
}

// maxThousands is the largest multiple count of 1000 that fits in int64.
const maxThousands = math.MaxInt64 / 1000

// roundToThousand rounds half-up to the nearest 1000, saturating at the largest int64 multiple of 1000.
// It never returns a negative value.
func roundToThousand(raw float64) int64 {
	if math.IsNaN(raw) || raw <= 0 {
		return 0
	}
	thousands := math.Floor(raw/1000 + 0.5)
	if thousands >= float64(maxThousands) {
		return maxThousands * 1000
	}
	return int64(thousands) * 1000
}

// Evaluate computes the market value of p as of now. It never fails: absent inputs use neutral multipliers.
func Evaluate(p Player, now time.Time) Valuation {
	v := Valuation{
		Age:                   AgeAt(p.DateOfBirth, now),
		PerformanceMultiplier: 1,
		PositionMultiplier:    positionMultiplier(p.Position),
		ContractMultiplier:    1,
		EvaluatedAt:           now,
	}
	v.BaseValue = baseValueForAge(v.Age)

	if latest, ok := LatestSeason(p.Statistics); ok {
		v.LatestSeason = latest.Season
		v.PerformanceMultiplier = performanceMultiplier(latest)
	}
	if p.ContractEndDate != nil {
		months := MonthsUntil(now, *p.ContractEndDate)
		v.ContractMonthsRemaining = &months
		v.ContractMultiplier = contractMultiplier(months)
	}

	v.RawValue = float64(v.BaseValue) * v.PerformanceMultiplier * v.PositionMultiplier * v.ContractMultiplier
	v.MarketValue = roundToThousand(v.RawValue)
	return v
}

func CalculateMarketValue(p Player, now time.Time) int64 {
	return Evaluate(p, now).MarketValue
}
