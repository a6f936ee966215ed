package transfer

import "time"

const EventTransferCompleted = "transfer.completed"

// CompletedEvent is raised when a permanent transfer reaches completed.
// The player side consumes it to move the player and extend the career history.
type CompletedEvent struct {
	TransferID  string    `json:"transferId"`
	PlayerID    string    `json:"playerId"`
	FromClubID  string    `json:"fromClubId"`
	ToClubID    string    `json:"toClubId"`
	Fee         int64     `json:"fee"`
	CompletedAt time.Time `json:"completedAt"`
}

func (CompletedEvent) EventName() string {
	return EventTransferCompleted
}
