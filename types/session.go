package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Session is the client-side record of a connected wallet account.
type Session struct {
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

// MarshalJSON writes the balance as a bare JSON number so the record matches the
// shape other clients of the same store expect.
func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Address string      `json:"address"`
		Balance json.Number `json:"balance"`
	}{
		Address: s.Address,
		Balance: json.Number(s.Balance.String()),
	})
}

// AuthContext holds the login state used by authenticated backend calls.
type AuthContext struct {
	Token    string
	UserID   string
	Username string
	UserRole string
}

// Authenticated reports whether a session token is present.
func (a AuthContext) Authenticated() bool { return a.Token != "" }

// Vote is the side a voter backs in a disputed bounty.
type Vote string

const (
	VoteFreelancer Vote = "FREELANCER"
	VoteClient     Vote = "CLIENT"
)

// ForFreelancer converts the vote to the boolean the contract expects.
func (v Vote) ForFreelancer() bool { return v == VoteFreelancer }
