package memory

import (
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
)

const (
	ClubIDArsenal   = "club-arsenal"
	ClubIDLiverpool = "club-liverpool"
	ClubIDBenfica   = "club-benfica"
	ClubIDPersija   = "club-persija"
	ClubIDAjax      = "club-ajax"
)

func SeedClubs() []club.Club {
	return []club.Club{
		{ID: ClubIDArsenal, Name: "Arsenal", ShortName: "ARS", League: "Premier League", Country: "England"},
		{ID: ClubIDLiverpool, Name: "Liverpool", ShortName: "LIV", League: "Premier League", Country: "England"},
		{ID: ClubIDBenfica, Name: "SL Benfica", ShortName: "SLB", League: "Primeira Liga", Country: "Portugal"},
		{ID: ClubIDPersija, Name: "Persija Jakarta", ShortName: "PSJ", League: "Liga 1", Country: "Indonesia"},
		{ID: ClubIDAjax, Name: "AFC Ajax", ShortName: "AJA", League: "Eredivisie", Country: "Netherlands"},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// SeedPlayers returns demo players with market values computed as of now.
func SeedPlayers(now time.Time) []player.Player {
	players := []player.Player{
		{
			ID:                "player-joao-neves",
			FirstName:         "Joao",
			LastName:          "Neves",
			DateOfBirth:       date(2004, time.September, 27),
			Nationality:       "Portugal",
			Position:          player.PositionCentralMidfielder,
			CurrentClubID:     ClubIDBenfica,
			ContractStartDate: datePtr(2023, time.July, 1),
			ContractEndDate:   datePtr(2028, time.June, 30),
			Statistics: []player.SeasonStatistic{
				{Season: "2023/24", Appearances: 41, Goals: 3, Assists: 2, MinutesPlayed: 3120, YellowCards: 6},
				{Season: "2024/25", Appearances: 38, Goals: 4, Assists: 5, MinutesPlayed: 3010, YellowCards: 5},
			},
			CareerHistory: []player.CareerEntry{
				{ClubID: ClubIDBenfica, StartDate: date(2023, time.July, 1)},
			},
		},
		{
			ID:                "player-bukayo-saka",
			FirstName:         "Bukayo",
			LastName:          "Saka",
			DateOfBirth:       date(2001, time.September, 5),
			Nationality:       "England",
			Position:          player.PositionRightWinger,
			CurrentClubID:     ClubIDArsenal,
			ContractStartDate: datePtr(2023, time.May, 24),
			ContractEndDate:   datePtr(2027, time.June, 30),
			Statistics: []player.SeasonStatistic{
				{Season: "2024/25", Appearances: 35, Goals: 12, Assists: 14, MinutesPlayed: 2480, YellowCards: 3},
			},
			CareerHistory: []player.CareerEntry{
				{ClubID: ClubIDArsenal, StartDate: date(2018, time.November, 1)},
			},
		},
		{
			ID:                "player-alisson-becker",
			FirstName:         "Alisson",
			LastName:          "Becker",
			DateOfBirth:       date(1992, time.October, 2),
			Nationality:       "Brazil",
			Position:          player.PositionGoalkeeper,
			CurrentClubID:     ClubIDLiverpool,
			ContractStartDate: datePtr(2018, time.July, 19),
			ContractEndDate:   datePtr(2027, time.June, 30),
			Statistics: []player.SeasonStatistic{
				{Season: "2024/25", Appearances: 33, MinutesPlayed: 2970, YellowCards: 1},
			},
		},
		{
			ID:            "player-rizky-ridho",
			FirstName:     "Rizky",
			LastName:      "Ridho",
			DateOfBirth:   date(2001, time.November, 21),
			Nationality:   "Indonesia",
			Position:      player.PositionCentreBack,
			CurrentClubID: ClubIDPersija,
		},
		{
			ID:                "player-brian-brobbey",
			FirstName:         "Brian",
			LastName:          "Brobbey",
			DateOfBirth:       date(2002, time.February, 1),
			Nationality:       "Netherlands",
			Position:          player.PositionStriker,
			CurrentClubID:     ClubIDAjax,
			ContractStartDate: datePtr(2023, time.July, 1),
			ContractEndDate:   datePtr(2028, time.June, 30),
			Statistics: []player.SeasonStatistic{
				{Season: "2023/24", Appearances: 44, Goals: 32, Assists: 7, MinutesPlayed: 3300},
				{Season: "2024/25", Appearances: 40, Goals: 13, Assists: 4, MinutesPlayed: 2600, YellowCards: 4},
			},
		},
	}

	for i := range players {
		players[i].CreatedAt = now
		players[i].UpdatedAt = now
		players[i].MarketValue = player.CalculateMarketValue(players[i], now)
	}
	return players
}
