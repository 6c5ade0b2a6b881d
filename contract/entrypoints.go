package contract

import (
	"context"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/wallet"
)

// CreateTaskRequest funds a bounty's escrow from the signer's account.
type CreateTaskRequest struct {
	BountyID uint64
	// Reward is in whole coins.
	Reward            uint64
	FreelancerAddress string
	// ActiveAddress is the signer; empty connects the wallet first.
	ActiveAddress string
}

// InitializeStore creates the signer's bounty store.
func (c *Client) InitializeStore(ctx context.Context, activeAddress string) (*types.TxResult, error) {
	return c.call(ctx, EntryInit, activeAddress, func(string) (wallet.Payload, error) {
		return InitPayload(c.config.ModuleAddress), nil
	})
}

// CreateTask funds the escrow for a bounty. The signer is recorded as the
// client and the freelancer as the payee.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*types.TxResult, error) {
	if _, err := normalizeFreelancer(req.FreelancerAddress); err != nil {
		c.logger.Errorf("%s: %v", EntryCreateTask, err)
		return nil, &types.TransactionError{EntryPoint: EntryCreateTask, Err: err}
	}
	return c.call(ctx, EntryCreateTask, req.ActiveAddress, func(signer string) (wallet.Payload, error) {
		return CreateTaskPayload(c.config.ModuleAddress, req.BountyID, signer, req.FreelancerAddress, req.Reward)
	})
}

// ReleaseReward pays the freelancer.
func (c *Client) ReleaseReward(ctx context.Context, bountyID uint64, activeAddress string) (*types.TxResult, error) {
	return c.call(ctx, EntryReleaseReward, activeAddress, func(string) (wallet.Payload, error) {
		return ReleaseRewardPayload(c.config.ModuleAddress, bountyID), nil
	})
}

// StartAppeal opens a dispute.
func (c *Client) StartAppeal(ctx context.Context, bountyID uint64, activeAddress string) (*types.TxResult, error) {
	return c.call(ctx, EntryStartAppeal, activeAddress, func(string) (wallet.Payload, error) {
		return StartAppealPayload(c.config.ModuleAddress, bountyID), nil
	})
}

// CastVote records the signer's vote on a dispute.
func (c *Client) CastVote(ctx context.Context, bountyID uint64, vote types.Vote, activeAddress string) (*types.TxResult, error) {
	return c.call(ctx, EntryCastVote, activeAddress, func(string) (wallet.Payload, error) {
		return CastVotePayload(c.config.ModuleAddress, bountyID, vote), nil
	})
}

// ResolveDispute settles a dispute.
func (c *Client) ResolveDispute(ctx context.Context, bountyID uint64, activeAddress string) (*types.TxResult, error) {
	return c.call(ctx, EntryResolveDispute, activeAddress, func(string) (wallet.Payload, error) {
		return ResolveDisputePayload(c.config.ModuleAddress, bountyID), nil
	})
}

// ClaimVotingReward claims the signer's voting reward.
func (c *Client) ClaimVotingReward(ctx context.Context, bountyID uint64, activeAddress string) (*types.TxResult, error) {
	return c.call(ctx, EntryClaimVotingReward, activeAddress, func(string) (wallet.Payload, error) {
		return ClaimVotingRewardPayload(c.config.ModuleAddress, bountyID), nil
	})
}
