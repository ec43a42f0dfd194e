// Package montyhall implements a single trial of the three-door game.
package montyhall

// Doors is the number of doors in the game.
const Doors = 3

// Source is a uniform integer source. IntN returns a value in [0, n).
type Source interface {
	IntN(n int) int
}

// Trial is the full record of one game.
type Trial struct {
	Goat       int // the reference door both outcomes are measured against
	Choice     int
	Opened     int
	Remaining  int
	StayWins   bool
	SwitchWins bool
}

// PlayTrial plays one game. The host's door is rejection-sampled until it
// differs from both Goat and Choice, so Opened != Goat && Opened != Choice.
func PlayTrial(rng Source) Trial {
	goat := rng.IntN(Doors)
	choice := rng.IntN(Doors)

	opened := rng.IntN(Doors)
	for opened == goat || opened == choice {
		opened = rng.IntN(Doors)
	}

	// Door indices sum to 0+1+2 = 3.
	remaining := Doors - choice - opened

	return Trial{
		Goat:       goat,
		Choice:     choice,
		Opened:     opened,
		Remaining:  remaining,
		StayWins:   choice == goat,
		SwitchWins: remaining == goat,
	}
}

// RunTrial plays one game and reports whether staying and switching win.
func RunTrial(rng Source) (stayWins, switchWins bool) {
	t := PlayTrial(rng)
	return t.StayWins, t.SwitchWins
}
