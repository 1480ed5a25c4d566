package core

// RuntimeConfig is what the host hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows
	TickRate int   // host ticks per second
	Seed     int64 // piece randomizer seed; 0 lets the host pick one
}

// DefaultConfig returns an 80x24 runtime at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the summary the host reads after every step.
type GameState struct {
	Score    int
	Lines    int
	Level    int
	GameOver bool
	Paused   bool
	Won      bool // the mode's goal was reached, e.g. sprint lines
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	// Cleared is the number of lines removed during this step.
	Cleared int
}
