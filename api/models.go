package api

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Record is a backend object whose fields the client passes through untouched.
type Record map[string]any

// String returns the field formatted for display, or "" when absent.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if f, ok := v.(float64); ok {
		return decimal.NewFromFloat(f).String()
	}
	return fmt.Sprint(v)
}

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Username            string `json:"username"`
	Password            string `json:"password"`
	FirstName           string `json:"first_name,omitempty"`
	LastName            string `json:"last_name,omitempty"`
	PhoneNumber         string `json:"phone_number,omitempty"`
	Email               string `json:"email,omitempty"`
	Gender              string `json:"gender,omitempty"`
	Age                 string `json:"age,omitempty"`
	CompanyName         string `json:"company_name,omitempty"`
	LinkedinProfileLink string `json:"linkedin_profile_link,omitempty"`
	UserRole            string `json:"user_role,omitempty"`
}

type registerBody struct {
	RegisterRequest
	Rating      int `json:"rating"`
	NumOfRating int `json:"num_of_rating"`
}

// Credentials log a user in.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token    string      `json:"token"`
	UserID   json.Number `json:"user_id"`
	UserRole string      `json:"user_role"`
	Message  string      `json:"message,omitempty"`
}

// UserDetails is the profile shown for the logged-in user.
type UserDetails struct {
	Username            string      `json:"username"`
	FirstName           string      `json:"first_name"`
	LastName            string      `json:"last_name"`
	Email               string      `json:"email"`
	PhoneNumber         string      `json:"phone_number"`
	CompanyName         string      `json:"company_name"`
	LinkedinProfileLink string      `json:"linkedin_profile_link"`
	UserRole            string      `json:"user_role"`
	Rating              json.Number `json:"rating"`
	NumOfRating         json.Number `json:"num_of_rating"`
}

// DashboardDetails summarizes a user's bounties.
type DashboardDetails struct {
	EarnedTaskReward            decimal.Decimal `json:"earned_task_reward"`
	ActiveBountiesCount         int             `json:"active_bounties_count"`
	CompletedBountiesCount      int             `json:"completed_bounties_count"`
	PaymentPendingBountiesCount int             `json:"payment_pending_bounties_count"`
	DisputedBountiesCount       int             `json:"disputed_bounties_count"`
	RequestedBountiesCount      int             `json:"requested_bounties_count"`
}

// ThreadMessage is a chat message or complaint posted to a bounty.
type ThreadMessage struct {
	BountyID    uint64 `json:"bounty_id"`
	User        string `json:"user"`
	Message     string `json:"message"`
	CreatedTime string `json:"created_time"`
}

// voteBody records a dispute vote with the backend.
type voteBody struct {
	User     string `json:"user"`
	BountyID uint64 `json:"bounty_id"`
	VotedFor string `json:"voted_for"`
}

type bountyRequestBody struct {
	RequestedCandidateID string `json:"requested_candidate_id"`
	BountyID             uint64 `json:"bounty_id"`
	WalletAddress        string `json:"candidate_pera_wallet_address"`
}

type acceptRequestBody struct {
	BountyID             uint64 `json:"bounty_id"`
	RequestedCandidateID string `json:"requested_candidate_id"`
}
