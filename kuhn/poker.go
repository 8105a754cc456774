// Package kuhn implements the rules of Kuhn poker: two players ante one
// chip each, are dealt one card from a three-card deck, and play a single
// betting round with a fixed bet size of one chip.
package kuhn

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Card is one of the three cards in the deck, ordered by rank.
type Card uint8

const (
	Jack Card = iota
	Queen
	King
)

var cardStr = [...]string{
	"J",
	"Q",
	"K",
}

func (c Card) String() string {
	return cardStr[c]
}

// Cards is the full deck in rank order.
var Cards = [...]Card{Jack, Queen, King}

// Action is the index of a choice at a decision point. Action 0 is the
// passive choice (check, or fold when facing a bet), action 1 the
// aggressive one (bet, or call when facing a bet).
type Action uint8

const (
	Check Action = iota
	Bet
)

// NumActions is the number of choices at every decision point.
const NumActions = 2

// History is the sequence of actions taken so far in a hand, packed
// into a single byte: the low two bits hold the number of actions,
// bit 2+i holds action i.
type History uint8

// Root is the empty history at the start of a hand.
const Root History = 0

const (
	lenBits = 2
	lenMask = 1<<lenBits - 1

	// A hand is over after at most three actions (check, bet, call).
	maxHandLen = 3
)

// Len returns the number of actions taken.
func (h History) Len() int {
	return int(h & lenMask)
}

// At returns the i'th action taken.
func (h History) At(i int) Action {
	return Action(h >> (lenBits + i) & 1)
}

// Append returns h extended by the action a.
func (h History) Append(a Action) History {
	n := h.Len()
	if n == maxHandLen {
		panic("append to finished hand: " + h.String())
	}

	return History(byte(h)&^lenMask | byte(n+1) | byte(a)<<(lenBits+n))
}

// Player returns the player to act: 0 or 1.
func (h History) Player() int {
	return h.Len() % 2
}

// FacingBet reports whether the player to act is facing an outstanding bet.
func (h History) FacingBet() bool {
	n := h.Len()
	return n > 0 && h.At(n-1) == Bet
}

// Terminal reports whether the hand is over: a player folded, a bet was
// called, or both players checked.
func (h History) Terminal() bool {
	n := h.Len()
	if n < 2 {
		return false
	}

	if h.At(n-2) == Bet {
		// The closing action faced a bet: it was a fold or a call.
		return true
	}

	return n == 2 && h.At(0) == Check && h.At(1) == Check
}

// The four histories at which a player has a decision.
var (
	afterCheck    = Root.Append(Check)     // "p"
	afterBet      = Root.Append(Bet)       // "b"
	afterCheckBet = afterCheck.Append(Bet) // "pb"
)

var allActions = [NumActions]Action{Check, Bet}

// LegalActions returns the choices available at h. Any history that
// cannot arise in play yields an error; it indicates a corrupted
// traversal and is fatal to the run.
func (h History) LegalActions() ([]Action, error) {
	switch h {
	case Root, afterCheck, afterBet, afterCheckBet:
		return allActions[:], nil
	}

	return nil, errors.Errorf("no legal actions in history %q", h)
}

// Payoff returns the payoff of a terminal history to player 0, given
// both hole cards. Player 1's payoff is the exact negation. One chip
// changes hands when the hand ends without a call, two when a bet is
// called.
func (h History) Payoff(c0, c1 Card) float32 {
	if !h.Terminal() {
		panic("payoff of unfinished hand: " + h.String())
	}

	n := h.Len()
	if h.At(n-2) == Bet && h.At(n-1) == Check {
		// Fold: the last player to act surrenders the ante.
		if (n-1)%2 == 0 {
			return -1
		}
		return 1
	}

	win := float32(1)
	if h.At(n-2) == Bet {
		// Showdown after a called bet.
		win = 2
	}

	if c0 > c1 {
		return win
	}
	return -win
}

var actionChars = [2][NumActions]byte{
	{'p', 'b'}, // open action: check or bet
	{'f', 'k'}, // facing a bet: fold or call
}

// String renders the history with one character per action: 'p' check,
// 'b' bet, 'f' fold, 'k' call.
func (h History) String() string {
	var buf [maxHandLen]byte
	n := h.Len()
	for i := 0; i < n; i++ {
		facing := 0
		if i > 0 && h.At(i-1) == Bet {
			facing = 1
		}
		buf[i] = actionChars[facing][h.At(i)]
	}

	return string(buf[:n])
}

// ActionNames returns the display names of the two actions at h.
func (h History) ActionNames() (passive, aggressive string) {
	if h.FacingBet() {
		return "fold", "call"
	}
	return "check", "bet"
}

// InfoSetKey identifies an information set: the card held by the player
// to act, together with the public action history.
type InfoSetKey struct {
	Card    Card
	History History
}

// NewInfoSetKey returns the information set observed by the player to
// act at h.
func NewInfoSetKey(h History, c0, c1 Card) InfoSetKey {
	if h.Player() == 0 {
		return InfoSetKey{Card: c0, History: h}
	}
	return InfoSetKey{Card: c1, History: h}
}

func (k InfoSetKey) String() string {
	return k.Card.String() + k.History.String()
}

// Bytes returns a fixed two-byte encoding of k. Bytewise order sorts
// keys by history and then by card.
func (k InfoSetKey) Bytes() []byte {
	return []byte{byte(k.History), byte(k.Card)}
}

// InfoSetKeyFromBytes is the inverse of Bytes.
func InfoSetKeyFromBytes(b []byte) InfoSetKey {
	return InfoSetKey{Card: Card(b[1]), History: History(b[0])}
}

// Dealer deals hole cards uniformly at random without replacement.
type Dealer struct {
	rng *rand.Rand
}

// NewDealer returns a Dealer with its own seeded source.
func NewDealer(seed int64) *Dealer {
	return NewDealerFrom(rand.New(rand.NewSource(seed)))
}

// NewDealerFrom returns a Dealer drawing from rng.
func NewDealerFrom(rng *rand.Rand) *Dealer {
	return &Dealer{rng: rng}
}

// NextDeal returns hole cards for both players.
func (d *Dealer) NextDeal() (c0, c1 Card) {
	i := d.rng.Intn(len(Cards))
	j := d.rng.Intn(len(Cards) - 1)
	if j >= i {
		j++
	}

	return Cards[i], Cards[j]
}

// Deals enumerates all six ordered deals.
func Deals() [][2]Card {
	var deals [][2]Card
	for _, c0 := range Cards {
		for _, c1 := range Cards {
			if c0 != c1 {
				deals = append(deals, [2]Card{c0, c1})
			}
		}
	}

	return deals
}
