package player

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPosition  = errors.New("invalid player position")
	ErrInvalidStatistic = errors.New("invalid season statistic")
)

// Position is one of the ten on-pitch roles a player can be registered under.
type Position string

const (
	PositionGoalkeeper          Position = "Goalkeeper"
	PositionCentreBack          Position = "Centre Back"
	PositionLeftBack            Position = "Left Back"
	PositionRightBack           Position = "Right Back"
	PositionDefensiveMidfielder Position = "Defensive Midfielder"
	PositionCentralMidfielder   Position = "Central Midfielder"
	PositionAttackingMidfielder Position = "Attacking Midfielder"
	PositionLeftWinger          Position = "Left Winger"
	PositionRightWinger         Position = "Right Winger"
	PositionStriker             Position = "Striker"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper:          {},
	PositionCentreBack:          {},
	PositionLeftBack:            {},
	PositionRightBack:           {},
	PositionDefensiveMidfielder: {},
	PositionCentralMidfielder:   {},
	PositionAttackingMidfielder: {},
	PositionLeftWinger:          {},
	PositionRightWinger:         {},
	PositionStriker:             {},
}

func ParsePosition(raw string) (Position, error) {
	value := Position(strings.TrimSpace(raw))
	if _, ok := AllPositions[value]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPosition, raw)
	}
	return value, nil
}

// SeasonStatistic aggregates one season of performance counters.
type SeasonStatistic struct {
	Season        string
	Appearances   int
	Goals         int
	Assists       int
	MinutesPlayed int
	YellowCards   int
	RedCards      int
}

func (s SeasonStatistic) Validate() error {
	if strings.TrimSpace(s.Season) == "" {
		return fmt.Errorf("%w: season is required", ErrInvalidStatistic)
	}
	counters := map[string]int{
		"appearances":   s.Appearances,
		"goals":         s.Goals,
		"assists":       s.Assists,
		"minutesPlayed": s.MinutesPlayed,
		"yellowCards":   s.YellowCards,
		"redCards":      s.RedCards,
	}
	for name, value := range counters {
		if value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidStatistic, name)
		}
	}
	return nil
}

// CareerEntry records a spell at a club. TransferFee is nil for free moves and seeded history.
// TransferID is set when the spell came from a completed transfer.
type CareerEntry struct {
	ClubID      string
	TransferID  string
	StartDate   time.Time
	EndDate     *time.Time
	TransferFee *int64
	LoanSpell   bool
}

// Player is a registered footballer whose MarketValue is refreshed on every save.
type Player struct {
	ID                string
	FirstName         string
	LastName          string
	DateOfBirth       time.Time
	Nationality       string
	Position          Position
	CurrentClubID     string
	ContractStartDate *time.Time
	ContractEndDate   *time.Time
	MarketValue       int64
	Statistics        []SeasonStatistic
	CareerHistory     []CareerEntry
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.DateOfBirth.IsZero() {
		return fmt.Errorf("player date of birth is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, p.Position)
	}
	if p.MarketValue < 0 {
		return fmt.Errorf("player market value must not be negative")
	}
	return nil
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// JoinClub moves the player to clubID and appends the spell to the career history.
func (p *Player) JoinClub(clubID, transferID string, at time.Time, fee int64, loan bool) {
	p.CurrentClubID = clubID
	entry := CareerEntry{
		ClubID:     clubID,
		TransferID: transferID,
		StartDate:  at,
		LoanSpell:  loan,
	}
	if fee > 0 {
		entry.TransferFee = &fee
	}
	p.CareerHistory = append(p.CareerHistory, entry)
}

// JoinedVia reports whether the career history already holds the spell created by transferID.
func (p Player) JoinedVia(transferID string) bool {
	if transferID == "" {
		return false
	}
	for _, entry := range p.CareerHistory {
		if entry.TransferID == transferID {
			return true
		}
	}
	return false
}

// AddStatistic replaces the record for the same season label or appends a new one.
func (p *Player) AddStatistic(stat SeasonStatistic) {
	stat.Season = strings.TrimSpace(stat.Season)
	for i := range p.Statistics {
		if p.Statistics[i].Season == stat.Season {
			p.Statistics[i] = stat
			return
		}
	}
	p.Statistics = append(p.Statistics, stat)
}

// Clone returns a deep copy so callers can mutate slices without touching stored records.
func (p Player) Clone() Player {
	out := p
	out.Statistics = append([]SeasonStatistic(nil), p.Statistics...)
	out.CareerHistory = make([]CareerEntry, len(p.CareerHistory))
	for i, entry := range p.CareerHistory {
		out.CareerHistory[i] = entry
		if entry.EndDate != nil {
			end := *entry.EndDate
			out.CareerHistory[i].EndDate = &end
		}
		if entry.TransferFee != nil {
			fee := *entry.TransferFee
			out.CareerHistory[i].TransferFee = &fee
		}
	}
	if p.ContractStartDate != nil {
		start := *p.ContractStartDate
		out.ContractStartDate = &start
	}
	if p.ContractEndDate != nil {
		end := *p.ContractEndDate
		out.ContractEndDate = &end
	}
	return out
}
