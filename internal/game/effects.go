package game

// effect describes what playing a rank does to the turn state.
type effect struct {
	steps   int  // turn advances after the play
	reverse bool // flip direction before advancing
	addDraw int  // added to the pending draw count
	setDraw int  // replaces the pending draw count when > 0
	wild    bool // color comes from the player's choice
}

// effects is keyed by rank; ranks absent from the table (0-9) use numberEffect.
var effects = map[Rank]effect{
	Skip:         {steps: 2},
	Reverse:      {steps: 1, reverse: true},
	DrawTwo:      {steps: 1, addDraw: 2},
	Wild:         {steps: 1, wild: true},
	WildDrawFour: {steps: 1, setDraw: 4, wild: true},
}

var numberEffect = effect{steps: 1}

func effectOf(r Rank) effect {
	if e, ok := effects[r]; ok {
		return e
	}
	return numberEffect
}

// nextTurn moves steps seats from current in direction around n players.
func nextTurn(current, direction, n, steps int) int {
	if n <= 0 {
		return 0
	}
	idx := current
	for i := 0; i < steps; i++ {
		idx = (idx + direction + n) % n
	}
	return idx
}

// applyTurn returns the direction and seat after e is played from current.
// With two players a reverse also skips, so the same seat plays again.
func applyTurn(e effect, direction, n, current int) (int, int) {
	steps := e.steps
	if e.reverse {
		direction = -direction
		if n == 2 {
			steps = 2
		}
	}
	return direction, nextTurn(current, direction, n, steps)
}

// pendingAfter returns the pending draw count after e is played.
func pendingAfter(e effect, pending int) int {
	if e.setDraw > 0 {
		return e.setDraw
	}
	return pending + e.addDraw
}

// stacksOn reports whether card may be played onto top while a draw
// penalty is pending. Only same-family escalation is allowed.
func stacksOn(card, top Card) bool {
	switch top.Rank {
	case DrawTwo:
		return card.Rank == DrawTwo
	case WildDrawFour:
		return card.Rank == WildDrawFour
	}
	return false
}
