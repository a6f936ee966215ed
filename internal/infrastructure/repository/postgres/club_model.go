package postgres

import "time"

type clubTableModel struct {
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	ShortName string    `db:"short_name"`
	League    string    `db:"league"`
	Country   string    `db:"country"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
