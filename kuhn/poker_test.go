package kuhn

import (
	"testing"
)

// mustHistory builds a History from its canonical string form.
func mustHistory(t *testing.T, s string) History {
	t.Helper()
	h := Root
	for _, c := range s {
		switch c {
		case 'p', 'f':
			h = h.Append(Check)
		case 'b', 'k':
			h = h.Append(Bet)
		default:
			t.Fatalf("bad history char %q", c)
		}
	}

	return h
}

func TestHistory_Grammar(t *testing.T) {
	var decisions, terminals []History
	var walk func(h History)
	walk = func(h History) {
		if h.Terminal() {
			terminals = append(terminals, h)
			return
		}

		decisions = append(decisions, h)
		actions, err := h.LegalActions()
		if err != nil {
			t.Fatalf("no legal actions at %q: %v", h, err)
		}

		for _, a := range actions {
			walk(h.Append(a))
		}
	}
	walk(Root)

	if len(decisions) != 4 {
		t.Errorf("expected %d decision histories, got %d", 4, len(decisions))
	}
	if len(terminals) != 5 {
		t.Errorf("expected %d terminal histories, got %d", 5, len(terminals))
	}

	got := make(map[string]bool)
	for _, h := range decisions {
		got[h.String()] = true
	}
	for _, want := range []string{"", "p", "b", "pb"} {
		if !got[want] {
			t.Errorf("missing decision history %q", want)
		}
	}

	got = make(map[string]bool)
	for _, h := range terminals {
		got[h.String()] = true
	}
	for _, want := range []string{"pp", "bf", "bk", "pbf", "pbk"} {
		if !got[want] {
			t.Errorf("missing terminal history %q", want)
		}
	}

	for _, h := range decisions {
		if h.Player() != h.Len()%2 {
			t.Errorf("history %q: player %d, want %d", h, h.Player(), h.Len()%2)
		}
	}
}

func TestHistory_LegalActions_Invalid(t *testing.T) {
	cases := []History{
		mustHistory(t, "pp"),
		mustHistory(t, "bf"),
		mustHistory(t, "bk"),
		mustHistory(t, "pbf"),
		mustHistory(t, "pbk"),
		History(3),    // length 3 with no bet: unreachable in play
		History(0x04), // length 0 with stray action bits
	}

	for _, h := range cases {
		if _, err := h.LegalActions(); err == nil {
			t.Errorf("expected error for history %#x (%q)", byte(h), h)
		}
	}
}

func TestHistory_FacingBet(t *testing.T) {
	cases := []struct {
		history string
		want    bool
	}{
		{"", false},
		{"p", false},
		{"b", true},
		{"pb", true},
	}

	for _, tc := range cases {
		h := mustHistory(t, tc.history)
		if h.FacingBet() != tc.want {
			t.Errorf("history %q: FacingBet() = %v, want %v", tc.history, h.FacingBet(), tc.want)
		}
	}
}

func TestHistory_Payoff(t *testing.T) {
	cases := []struct {
		history string
		c0, c1  Card
		want    float32
	}{
		{"pp", King, Jack, 1},
		{"bk", King, Jack, 2},
		{"bf", King, Jack, 1},
		{"pbf", King, Jack, -1},
		{"pbk", King, Jack, 2},

		{"pp", Jack, King, -1},
		{"bk", Jack, King, -2},
		{"bf", Jack, King, 1}, // fold loses regardless of cards
		{"pbf", Jack, King, -1},
		{"pbk", Jack, King, -2},

		{"pp", Queen, Jack, 1},
		{"pbk", Queen, King, -2},
	}

	for _, tc := range cases {
		h := mustHistory(t, tc.history)
		got := h.Payoff(tc.c0, tc.c1)
		if got != tc.want {
			t.Errorf("payoff of %q with cards (%v, %v) = %v, want %v",
				tc.history, tc.c0, tc.c1, got, tc.want)
		}
	}
}

func TestHistory_Payoff_Properties(t *testing.T) {
	// Fold payoffs do not depend on the cards.
	for _, s := range []string{"bf", "pbf"} {
		h := mustHistory(t, s)
		want := h.Payoff(King, Jack)
		for _, deal := range Deals() {
			if got := h.Payoff(deal[0], deal[1]); got != want {
				t.Errorf("fold payoff of %q with deal %v = %v, want %v", s, deal, got, want)
			}
		}
	}

	// Showdown payoffs flip sign when the deal is reversed.
	for _, s := range []string{"pp", "bk", "pbk"} {
		h := mustHistory(t, s)
		for _, deal := range Deals() {
			u, rev := h.Payoff(deal[0], deal[1]), h.Payoff(deal[1], deal[0])
			if u != -rev {
				t.Errorf("showdown payoff of %q with deal %v: %v vs reversed %v", s, deal, u, rev)
			}
		}
	}
}

func TestHistory_String(t *testing.T) {
	for _, want := range []string{"", "p", "b", "pb", "pp", "bf", "bk", "pbf", "pbk"} {
		h := mustHistory(t, want)
		if h.String() != want {
			t.Errorf("history round-trip: got %q, want %q", h.String(), want)
		}
	}
}

func TestInfoSetKey(t *testing.T) {
	key := NewInfoSetKey(mustHistory(t, "pb"), Queen, Jack)
	if key.String() != "Qpb" {
		t.Errorf("key string: got %q, want %q", key.String(), "Qpb")
	}

	// Player 1 to act after a bet observes their own card.
	key = NewInfoSetKey(mustHistory(t, "b"), Queen, Jack)
	if key.String() != "Jb" {
		t.Errorf("key string: got %q, want %q", key.String(), "Jb")
	}

	round := InfoSetKeyFromBytes(key.Bytes())
	if round != key {
		t.Errorf("byte round-trip: got %v, want %v", round, key)
	}
}

func TestInfoSetKey_TwelveInfoSets(t *testing.T) {
	seen := make(map[InfoSetKey]bool)
	for _, deal := range Deals() {
		for _, s := range []string{"", "p", "b", "pb"} {
			h := mustHistory(t, s)
			seen[NewInfoSetKey(h, deal[0], deal[1])] = true
		}
	}

	if len(seen) != 12 {
		t.Errorf("expected %d information sets, got %d", 12, len(seen))
	}
}

func TestDealer(t *testing.T) {
	d := NewDealer(1)
	counts := make(map[[2]Card]int)
	for i := 0; i < 600; i++ {
		c0, c1 := d.NextDeal()
		if c0 == c1 {
			t.Fatalf("dealt the same card to both players: %v", c0)
		}
		counts[[2]Card{c0, c1}]++
	}

	if len(counts) != 6 {
		t.Errorf("expected all 6 deals to occur, got %d", len(counts))
	}

	// Same seed, same deals.
	d1, d2 := NewDealer(42), NewDealer(42)
	for i := 0; i < 100; i++ {
		a0, a1 := d1.NextDeal()
		b0, b1 := d2.NextDeal()
		if a0 != b0 || a1 != b1 {
			t.Fatalf("deal %d diverged: (%v, %v) vs (%v, %v)", i, a0, a1, b0, b1)
		}
	}
}
