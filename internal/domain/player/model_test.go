package player

import (
	"errors"
	"testing"
	"time"
)

func TestParsePosition(t *testing.T) {
	got, err := ParsePosition(" Striker ")
	if err != nil || got != PositionStriker {
		t.Fatalf("ParsePosition = %q, %v", got, err)
	}
	if _, err := ParsePosition("FWD"); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
}

func TestSeasonStatisticValidate(t *testing.T) {
	if err := (SeasonStatistic{Season: "2024/25", Goals: 3}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (SeasonStatistic{Season: " "}).Validate(); !errors.Is(err, ErrInvalidStatistic) {
		t.Fatalf("expected ErrInvalidStatistic for blank season, got %v", err)
	}
	if err := (SeasonStatistic{Season: "2024", Assists: -1}).Validate(); !errors.Is(err, ErrInvalidStatistic) {
		t.Fatalf("expected ErrInvalidStatistic for negative counter, got %v", err)
	}
}

func TestAddStatisticReplacesSameSeason(t *testing.T) {
	p := Player{Statistics: []SeasonStatistic{{Season: "2024/25", Goals: 1}}}

	p.AddStatistic(SeasonStatistic{Season: "2024/25 ", Goals: 4})
	p.AddStatistic(SeasonStatistic{Season: "2025/26", Goals: 2})

	if len(p.Statistics) != 2 || p.Statistics[0].Goals != 4 {
		t.Fatalf("unexpected statistics: %+v", p.Statistics)
	}
}

func TestJoinClubAppendsCareerEntry(t *testing.T) {
	at := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	p := Player{CurrentClubID: "club-a"}

	p.JoinClub("club-b", "tr-1", at, 2500000, false)

	if p.CurrentClubID != "club-b" {
		t.Fatalf("current club = %s, want club-b", p.CurrentClubID)
	}
	last := p.CareerHistory[len(p.CareerHistory)-1]
	if last.ClubID != "club-b" || !last.StartDate.Equal(at) || last.TransferFee == nil || *last.TransferFee != 2500000 {
		t.Fatalf("unexpected career entry: %+v", last)
	}
}

func TestJoinedVia(t *testing.T) {
	p := Player{CareerHistory: []CareerEntry{{ClubID: "club-a"}}}
	if p.JoinedVia("tr-1") || p.JoinedVia("") {
		t.Fatal("expected no transfer spell before joining")
	}

	p.JoinClub("club-b", "tr-1", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), 0, false)

	if !p.JoinedVia("tr-1") {
		t.Fatal("expected spell for tr-1 after joining")
	}
	if p.JoinedVia("tr-2") {
		t.Fatal("unexpected spell for tr-2")
	}
}

func TestCloneIsDeep(t *testing.T) {
	fee := int64(10)
	p := Player{
		Statistics:    []SeasonStatistic{{Season: "2024"}},
		CareerHistory: []CareerEntry{{ClubID: "a", TransferFee: &fee}},
	}

	clone := p.Clone()
	clone.Statistics[0].Season = "2025"
	*clone.CareerHistory[0].TransferFee = 20

	if p.Statistics[0].Season != "2024" || *p.CareerHistory[0].TransferFee != 10 {
		t.Fatal("clone shares memory with original")
	}
}
