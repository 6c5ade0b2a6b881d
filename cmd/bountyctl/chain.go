package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/contract"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/amount"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/wallet"
)

func bountyArg(c *cli.Context) (uint64, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("bounty id is required")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad bounty id %q: %w", raw, err)
	}
	return id, nil
}

func newBalanceCommand() *cli.Command {
	return &cli.Command{
		Name:      "balance",
		Usage:     "show an account's balance and whether it holds a bounty store",
		ArgsUsage: "[address]",
		Action: func(c *cli.Context) error {
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			addr := c.Args().First()
			if addr == "" {
				sess, ok := cl.Wallet.Session()
				if !ok {
					return types.ErrNotConnected
				}
				addr = sess.Address
			}

			bal, err := cl.Blockchain.Balance(c.Context, addr)
			if err != nil {
				return err
			}
			exists, err := cl.Blockchain.TaskStoreExists(c.Context, addr)
			if err != nil {
				return err
			}

			fmt.Printf("%s  %s APT\n", addr, color.GreenString(bal.String()))
			fmt.Printf("octas: %s\n", amount.FormatOctas(amount.FromUnits(bal)))
			if exists {
				fmt.Println("task store: " + color.GreenString("initialized"))
			} else {
				fmt.Println("task store: " + color.YellowString("missing"))
			}
			return nil
		},
	}
}

func newSessionCommand() *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "show the stored session",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "refresh", Usage: "re-read the wallet balance from the chain"},
		},
		Action: func(c *cli.Context) error {
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			auth, err := cl.Session.Auth(c.Context)
			if err != nil {
				return err
			}
			if auth.Authenticated() {
				fmt.Printf("user:   %s (id %s, %s)\n", auth.Username, auth.UserID, auth.UserRole)
			} else {
				fmt.Println("user:   " + color.HiBlackString("logged out"))
			}

			sess, ok := cl.Wallet.Session()
			if !ok {
				fmt.Println("wallet: " + color.HiBlackString("not connected"))
				return nil
			}
			if c.Bool("refresh") {
				if sess, err = cl.Wallet.RefreshBalance(c.Context); err != nil {
					return err
				}
			}
			fmt.Printf("wallet: %s, balance %s\n", sess.Address, sess.Balance)
			return nil
		},
	}
}

func newPayloadCommand() *cli.Command {
	return &cli.Command{
		Name:      "payload",
		Usage:     "print the transaction payload for a contract entry point",
		ArgsUsage: "<init|create_task|release_reward|start_appeal|cast_vote|resolve_dispute|claim_voting_reward>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "module", Usage: "module address (defaults to the configured one)"},
			&cli.Uint64Flag{Name: "bounty"},
			&cli.Uint64Flag{Name: "reward", Usage: "reward in whole coins"},
			&cli.StringFlag{Name: "client", Usage: "funding account"},
			&cli.StringFlag{Name: "freelancer"},
			&cli.StringFlag{Name: "vote", Value: string(types.VoteFreelancer)},
		},
		Action: func(c *cli.Context) error {
			module := c.String("module")
			if module == "" {
				cfg, err := clientConfig(c)
				if err != nil {
					return err
				}
				if err := cfg.Validate(); err != nil {
					return err
				}
				module = cfg.ModuleAddress
			}
			id := c.Uint64("bounty")

			var (
				p   wallet.Payload
				err error
			)
			switch entry := c.Args().First(); entry {
			case contract.EntryInit:
				p = contract.InitPayload(module)
			case contract.EntryCreateTask:
				p, err = contract.CreateTaskPayload(module, id, c.String("client"), c.String("freelancer"), c.Uint64("reward"))
			case contract.EntryReleaseReward:
				p = contract.ReleaseRewardPayload(module, id)
			case contract.EntryStartAppeal:
				p = contract.StartAppealPayload(module, id)
			case contract.EntryCastVote:
				p = contract.CastVotePayload(module, id, types.Vote(c.String("vote")))
			case contract.EntryResolveDispute:
				p = contract.ResolveDisputePayload(module, id)
			case contract.EntryClaimVotingReward:
				p = contract.ClaimVotingRewardPayload(module, id)
			default:
				return fmt.Errorf("unknown entry point %q", entry)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}
}

func newWaitCommand() *cli.Command {
	return &cli.Command{
		Name:      "wait",
		Usage:     "wait for a submitted transaction to be committed",
		ArgsUsage: "<tx-hash>",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "timeout", Value: 2 * time.Minute},
		},
		Action: func(c *cli.Context) error {
			hash := c.Args().First()
			if hash == "" {
				return fmt.Errorf("transaction hash is required")
			}
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			res, err := cl.Blockchain.WaitForTransaction(c.Context, hash, c.Duration("timeout"))
			if err != nil {
				return err
			}
			fmt.Printf("%s %s at version %s (%s)\n", color.GreenString("committed"), res.Hash, res.Version, res.VMStatus)
			return nil
		},
	}
}
