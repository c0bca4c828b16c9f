package game

import "testing"

func TestNextTurn(t *testing.T) {
	tests := []struct {
		name                      string
		current, dir, n, steps, w int
	}{
		{"forward", 0, 1, 4, 1, 1},
		{"forward wrap", 3, 1, 4, 1, 0},
		{"backward wrap", 0, -1, 4, 1, 3},
		{"skip forward", 2, 1, 4, 2, 0},
		{"skip backward", 1, -1, 3, 2, 2},
		{"two players skip", 0, 1, 2, 2, 0},
		{"no steps", 2, 1, 4, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextTurn(tt.current, tt.dir, tt.n, tt.steps); got != tt.w {
				t.Errorf("nextTurn(%d, %d, %d, %d) = %d, want %d", tt.current, tt.dir, tt.n, tt.steps, got, tt.w)
			}
		})
	}
}

func TestApplyTurn(t *testing.T) {
	tests := []struct {
		name       string
		rank       Rank
		dir, n, at int
		wantDir    int
		wantAt     int
	}{
		{"number", Seven, 1, 4, 1, 1, 2},
		{"skip", Skip, 1, 4, 1, 1, 3},
		{"skip backward", Skip, -1, 4, 1, -1, 3},
		{"reverse three players", Reverse, 1, 3, 1, -1, 0},
		{"reverse two players keeps seat", Reverse, 1, 2, 0, -1, 0},
		{"reverse two players backward", Reverse, -1, 2, 1, 1, 1},
		{"draw two", DrawTwo, 1, 3, 2, 1, 0},
		{"wild draw four", WildDrawFour, -1, 3, 0, -1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, at := applyTurn(effectOf(tt.rank), tt.dir, tt.n, tt.at)
			if dir != tt.wantDir || at != tt.wantAt {
				t.Errorf("applyTurn = (%d, %d), want (%d, %d)", dir, at, tt.wantDir, tt.wantAt)
			}
		})
	}
}

func TestPendingAfter(t *testing.T) {
	if got := pendingAfter(effectOf(DrawTwo), 2); got != 4 {
		t.Errorf("DrawTwo on 2 = %d, want 4", got)
	}
	if got := pendingAfter(effectOf(WildDrawFour), 4); got != 4 {
		t.Errorf("WildDrawFour on 4 = %d, want 4", got)
	}
	if got := pendingAfter(effectOf(Three), 0); got != 0 {
		t.Errorf("number = %d, want 0", got)
	}
}

func TestStacksOn(t *testing.T) {
	d2 := Card{Rank: DrawTwo, Color: Red}
	wd4 := Card{Rank: WildDrawFour}
	if !stacksOn(Card{Rank: DrawTwo, Color: Blue}, d2) {
		t.Error("DrawTwo should stack on DrawTwo")
	}
	if stacksOn(wd4, d2) {
		t.Error("WildDrawFour should not stack on DrawTwo")
	}
	if !stacksOn(wd4, wd4) {
		t.Error("WildDrawFour should stack on WildDrawFour")
	}
	if stacksOn(d2, wd4) {
		t.Error("DrawTwo should not stack on WildDrawFour")
	}
	if stacksOn(Card{Rank: Five, Color: Red}, d2) {
		t.Error("number should never stack")
	}
}
