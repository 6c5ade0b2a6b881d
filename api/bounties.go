package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
)

// BountyDetails fetches a bounty as seen by the logged-in user.
func (c *Client) BountyDetails(ctx context.Context, bountyID uint64) (Record, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	return field[Record](ctx, c, "get-bounty-details/"+id(bountyID)+"/"+seg(a.UserID), "bounty_details")
}

// ClientBounties lists the logged-in client's bounties of a given status.
func (c *Client) ClientBounties(ctx context.Context, bountyType string) ([]Record, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	return field[[]Record](ctx, c, "get-client-bounties/"+seg(a.UserID)+"/"+seg(bountyType), "client_bounties")
}

// FreelancerBounties lists the logged-in freelancer's bounties of a given status.
func (c *Client) FreelancerBounties(ctx context.Context, bountyType string) ([]Record, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	return field[[]Record](ctx, c, "get-freelancer-bounties/"+seg(a.UserID)+"/"+seg(bountyType), "freelancer_bounties")
}

// DashboardDetails fetches the dashboard counters for userType (CLIENT or FREELANCER).
func (c *Client) DashboardDetails(ctx context.Context, userType string) (*DashboardDetails, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	return field[*DashboardDetails](ctx, c, "get-dashboard-details/"+seg(userType)+"/"+seg(a.UserID), "dashboard_details")
}

// RequestedBounties lists the bounties the logged-in freelancer has requested.
func (c *Client) RequestedBounties(ctx context.Context) ([]Record, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	return field[[]Record](ctx, c, "get-requested-bounties/"+seg(a.UserID), "requestedBounties")
}

// DisputedBounties lists disputes the logged-in user can vote on.
func (c *Client) DisputedBounties(ctx context.Context) ([]Record, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	return field[[]Record](ctx, c, "get-disputed-bounties/"+seg(a.UserID), "disputed_bounties")
}

// RewardBounties lists disputes whose voting reward the user can claim.
func (c *Client) RewardBounties(ctx context.Context) ([]Record, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	return field[[]Record](ctx, c, "get-reward-bounties/"+seg(a.UserID), "reward_bounties")
}

// BountyTypes lists the task categories.
func (c *Client) BountyTypes(ctx context.Context) ([]string, error) {
	return field[[]string](ctx, c, "get-bounty-types/", "task_types")
}

// TaskTypeBounties lists open bounties in a category.
func (c *Client) TaskTypeBounties(ctx context.Context, taskType string) ([]Record, error) {
	return field[[]Record](ctx, c, "get-bounty-types/"+seg(taskType)+"/get-bounties", "bounties")
}

// BountyRequests lists the freelancers who asked to work on a bounty.
func (c *Client) BountyRequests(ctx context.Context, bountyID uint64) ([]Record, error) {
	return field[[]Record](ctx, c, "get-client-bounty/"+id(bountyID)+"/get-requests", "requested_candidates")
}

// CreateBounty posts a new bounty owned by the logged-in client.
func (c *Client) CreateBounty(ctx context.Context, bounty Record) (Record, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	body := make(Record, len(bounty)+1)
	for k, v := range bounty {
		body[k] = v
	}
	body["client_id"] = a.UserID

	var out Record
	err = c.do(ctx, http.MethodPost, "create-bounty/", true, body, &out)
	return out, err
}

// SendBountyRequest asks to work on a bounty, offering the stored wallet
// address for payment.
func (c *Client) SendBountyRequest(ctx context.Context, bountyID uint64) (Record, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	addr, err := c.store.WalletAddress(ctx)
	if err != nil {
		return nil, err
	}
	var out Record
	err = c.do(ctx, http.MethodPost, "request-bounty/", true, bountyRequestBody{
		RequestedCandidateID: a.UserID,
		BountyID:             bountyID,
		WalletAddress:        addr,
	}, &out)
	return out, err
}

// SendVote records the user's dispute vote with the backend.
func (c *Client) SendVote(ctx context.Context, bountyID uint64, vote types.Vote) (Record, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	var out Record
	err = c.do(ctx, http.MethodPost, "voting/", true, voteBody{User: a.UserID, BountyID: bountyID, VotedFor: string(vote)}, &out)
	return out, err
}

// AcceptBountyRequest assigns a bounty to a requesting freelancer.
func (c *Client) AcceptBountyRequest(ctx context.Context, bountyID uint64, candidateID string) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodPost, "accept-bounty-request/", true, acceptRequestBody{
		BountyID:             bountyID,
		RequestedCandidateID: candidateID,
	}, &out)
	return out, err
}

// TransferAmount tells the backend a dispute was settled in favor of one side.
func (c *Client) TransferAmount(ctx context.Context, isFreelancer bool, bountyID uint64) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodGet, "transfer-amount/"+strconv.FormatBool(isFreelancer)+"/"+id(bountyID), true, nil, &out)
	return out, err
}

// TransferDirectlyAmount tells the backend the reward was released without a dispute.
func (c *Client) TransferDirectlyAmount(ctx context.Context, bountyID uint64) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodGet, "transfer-directly-amount/"+id(bountyID), true, nil, &out)
	return out, err
}

// DeleteVote withdraws the user's vote.
func (c *Client) DeleteVote(ctx context.Context, bountyID uint64) (Record, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	var out Record
	err = c.do(ctx, http.MethodDelete, "vote-delete/"+id(bountyID)+"/"+seg(a.UserID), true, nil, &out)
	return out, err
}

// RaiseDispute marks a bounty disputed.
func (c *Client) RaiseDispute(ctx context.Context, bountyID uint64) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodGet, "raise-dispute/"+id(bountyID), true, nil, &out)
	return out, err
}

// PostFinalSubmissionLink submits the freelancer's deliverable.
func (c *Client) PostFinalSubmissionLink(ctx context.Context, bountyID uint64, submission Record) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodPost, "accept-submission-link/"+id(bountyID), true, submission, &out)
	return out, err
}

func id(v uint64) string { return strconv.FormatUint(v, 10) }
