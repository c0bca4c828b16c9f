package game

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		want Card
	}{
		{"red_7", Card{Rank: Seven, Color: Red}},
		{"blue_0", Card{Rank: Zero, Color: Blue}},
		{"yellow_Skip", Card{Rank: Skip, Color: Yellow}},
		{"green_Reverse", Card{Rank: Reverse, Color: Green}},
		{"red_DrawTwo", Card{Rank: DrawTwo, Color: Red}},
		{"red_Draw Two", Card{Rank: DrawTwo, Color: Red}},
		{"black_Wild", Card{Rank: Wild, Color: ColorNone}},
		{"black_WildDrawFour", Card{Rank: WildDrawFour, Color: ColorNone}},
		{"black_Wild Draw Four", Card{Rank: WildDrawFour, Color: ColorNone}},
		{"RED_7", Card{Rank: Seven, Color: Red}},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.in)
		if err != nil {
			t.Fatalf("ParseCard(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseCard(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseCardRejects(t *testing.T) {
	for _, in := range []string{"", "red7", "purple_7", "red_10", "red_Wild", "black_7", "black_Skip"} {
		_, err := ParseCard(in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseCard(%q) error = %v, want InvalidInput", in, err)
		}
	}
}

func TestCardString(t *testing.T) {
	if got := (Card{Rank: WildDrawFour}).String(); got != "black_WildDrawFour" {
		t.Errorf("String() = %q", got)
	}
	if got := (Card{Rank: Nine, Color: Green}).String(); got != "green_9" {
		t.Errorf("String() = %q", got)
	}
}

func TestCardJSON(t *testing.T) {
	type payload struct {
		Card  Card  `json:"card"`
		Color Color `json:"color"`
	}
	data, err := json.Marshal(payload{Card: Card{Rank: Skip, Color: Blue}, Color: Yellow})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"card":"blue_Skip","color":"yellow"}` {
		t.Fatalf("Marshal = %s", data)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"card":"red_Reverse","color":"green"}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Card != (Card{Rank: Reverse, Color: Red}) || p.Color != Green {
		t.Fatalf("Unmarshal = %+v", p)
	}
}

func TestRankPoints(t *testing.T) {
	tests := []struct {
		rank Rank
		want int
	}{
		{Zero, 0}, {Seven, 7}, {Skip, 20}, {Reverse, 20}, {DrawTwo, 20}, {Wild, 50}, {WildDrawFour, 50},
	}
	for _, tt := range tests {
		if got := tt.rank.Points(); got != tt.want {
			t.Errorf("%v.Points() = %d, want %d", tt.rank, got, tt.want)
		}
	}
}
