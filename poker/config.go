package poker

import "fmt"

type Config struct {
	// Table
	MaxPlayers int

	// TurnDuration is the tick budget each player gets per betting
	// turn before the turn lapses into an implicit fold.
	TurnDuration int

	// RNG seed (0 => time-based)
	Seed int64
}

func (c Config) validate() error {
	if c.MaxPlayers < 2 {
		return fmt.Errorf("MaxPlayers must be >= 2")
	}
	if c.TurnDuration <= 0 {
		return fmt.Errorf("TurnDuration must be > 0")
	}
	return nil
}
