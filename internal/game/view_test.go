package game

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPrivateViewHidesOtherHands(t *testing.T) {
	s := startedSession(t, "Alice", "Bob", "Carol")
	rig(t, s, map[string][]Card{
		"Alice": cards(t, "red_1", "red_3"),
		"Bob":   cards(t, "green_4"),
		"Carol": cards(t, "yellow_6", "yellow_7", "yellow_8"),
	}, card(t, "red_5"), Red)

	v, err := s.PrivateView("Bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Hand) != 1 || v.Hand[0] != card(t, "green_4") {
		t.Errorf("hand = %v", v.Hand)
	}
	if v.PlayerIndex != 1 {
		t.Errorf("index = %d, want 1", v.PlayerIndex)
	}
	want := map[string]int{"Alice": 2, "Bob": 1, "Carol": 3}
	for p, n := range want {
		if v.HandSizes[p] != n {
			t.Errorf("HandSizes[%s] = %d, want %d", p, v.HandSizes[p], n)
		}
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	for _, leaked := range []string{"red_1", "red_3", "yellow_6", "yellow_7"} {
		if strings.Contains(string(data), leaked) {
			t.Errorf("Bob's view leaks %s: %s", leaked, data)
		}
	}
	if !strings.Contains(string(data), `"currentPlayer":"Alice"`) || !strings.Contains(string(data), `"topCard":"red_5"`) {
		t.Errorf("view missing public fields: %s", data)
	}
}

func TestPrivateViewCopiesHand(t *testing.T) {
	s := startedSession(t, "Alice", "Bob")
	rig(t, s, map[string][]Card{
		"Alice": cards(t, "red_1"),
		"Bob":   cards(t, "green_4"),
	}, card(t, "red_5"), Red)

	v, _ := s.PrivateView("Alice")
	v.Hand[0] = Card{Rank: Wild}
	if s.hands["Alice"][0] != card(t, "red_1") {
		t.Fatal("view shares storage with the session hand")
	}
}

func TestPrivateViewUnknownPlayer(t *testing.T) {
	s := startedSession(t, "Alice", "Bob")
	if _, err := s.PrivateView("Mallory"); !errors.Is(err, ErrNotInRoom) {
		t.Fatalf("err = %v", err)
	}
}

func TestSnapshotCoversEveryPlayer(t *testing.T) {
	s := startedSession(t, "Alice", "Bob", "Carol", "Dave")
	snap := s.Snapshot()
	if len(snap.Private) != 4 {
		t.Fatalf("private views = %d", len(snap.Private))
	}
	for p, v := range snap.Private {
		if v.Player != p || len(v.Hand) != HandSize {
			t.Errorf("%s: view for %s with %d cards", p, v.Player, len(v.Hand))
		}
		if v.PublicView.CurrentPlayer != snap.Public.CurrentPlayer {
			t.Errorf("%s: public part differs", p)
		}
	}
}

func TestPublicViewBeforeStart(t *testing.T) {
	s := NewSession("R", nil)
	v := s.PublicView()
	if v.Phase != PhaseWaiting || v.TopCard != nil || v.CurrentPlayer != "" {
		t.Fatalf("view = %+v", v)
	}
}
