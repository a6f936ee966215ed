package club

import "fmt"

// Club is a professional football club that can buy, sell or loan players.
type Club struct {
	ID        string
	Name      string
	ShortName string
	League    string
	Country   string
}

func (c Club) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("club id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}
	return nil
}
