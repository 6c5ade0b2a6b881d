package contract

import (
	"fmt"
	"strconv"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/amount"
	sdkcrypto "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/crypto"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/wallet"
)

// ModuleName is the Move module holding the bounty entry points.
const ModuleName = "task_bounty"

// Entry points of the bounty module.
const (
	EntryInit              = "init"
	EntryCreateTask        = "create_task"
	EntryReleaseReward     = "release_reward"
	EntryStartAppeal       = "start_appeal"
	EntryCastVote          = "cast_vote"
	EntryResolveDispute    = "resolve_dispute"
	EntryClaimVotingReward = "claim_voting_reward"
)

// FunctionID returns the fully qualified name of entry under moduleAddress.
func FunctionID(moduleAddress, entry string) string {
	return fmt.Sprintf("%s::%s::%s", moduleAddress, ModuleName, entry)
}

// BuildPayload assembles an entry-function payload. Arguments are passed
// through as given.
func BuildPayload(moduleAddress, entry string, args ...any) wallet.Payload {
	if args == nil {
		args = []any{}
	}
	return wallet.Payload{
		Type:          wallet.PayloadType,
		Function:      FunctionID(moduleAddress, entry),
		TypeArguments: []string{},
		Arguments:     args,
	}
}

func bountyArg(id uint64) string { return strconv.FormatUint(id, 10) }

// InitPayload creates the caller's bounty store.
func InitPayload(moduleAddress string) wallet.Payload {
	return BuildPayload(moduleAddress, EntryInit)
}

// CreateTaskPayload funds the escrow for bountyID. The amount sent is the
// reward in octas plus amount.FundingBuffer.
func CreateTaskPayload(moduleAddress string, bountyID uint64, clientAddress, freelancerAddress string, reward uint64) (wallet.Payload, error) {
	client, err := sdkcrypto.NormalizeAddress(clientAddress)
	if err != nil {
		return wallet.Payload{}, fmt.Errorf("client: %w", err)
	}
	freelancer, err := normalizeFreelancer(freelancerAddress)
	if err != nil {
		return wallet.Payload{}, err
	}
	return BuildPayload(moduleAddress, EntryCreateTask,
		bountyArg(bountyID),
		client,
		freelancer,
		amount.String(amount.FundingAmount(reward)),
	), nil
}

// ReleaseRewardPayload pays the freelancer of bountyID.
func ReleaseRewardPayload(moduleAddress string, bountyID uint64) wallet.Payload {
	return BuildPayload(moduleAddress, EntryReleaseReward, bountyArg(bountyID))
}

// StartAppealPayload opens a dispute on bountyID.
func StartAppealPayload(moduleAddress string, bountyID uint64) wallet.Payload {
	return BuildPayload(moduleAddress, EntryStartAppeal, bountyArg(bountyID))
}

// CastVotePayload votes on a disputed bounty.
func CastVotePayload(moduleAddress string, bountyID uint64, vote types.Vote) wallet.Payload {
	return BuildPayload(moduleAddress, EntryCastVote, bountyArg(bountyID), vote.ForFreelancer())
}

// ResolveDisputePayload settles a dispute and pays out the winning side.
func ResolveDisputePayload(moduleAddress string, bountyID uint64) wallet.Payload {
	return BuildPayload(moduleAddress, EntryResolveDispute, bountyArg(bountyID))
}

// ClaimVotingRewardPayload claims a voter's share for bountyID.
func ClaimVotingRewardPayload(moduleAddress string, bountyID uint64) wallet.Payload {
	return BuildPayload(moduleAddress, EntryClaimVotingReward, bountyArg(bountyID))
}

func normalizeFreelancer(addr string) (string, error) {
	v, err := sdkcrypto.NormalizeAddress(addr)
	if err != nil {
		return "", fmt.Errorf("freelancer: %w", err)
	}
	return v, nil
}
