package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/api"
)

var bountyColumns = []string{"id", "title", "task_type", "reward_amount", "status"}

func printBounties(list []api.Record) {
	if len(list) == 0 {
		fmt.Println(color.HiBlackString("no bounties"))
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(bountyColumns)
	for _, b := range list {
		row := make([]string, len(bountyColumns))
		for i, col := range bountyColumns {
			row[i] = b.String(col)
		}
		table.Append(row)
	}
	table.Render()
}

func role(c *cli.Context) string {
	return strings.ToUpper(c.String("role"))
}

func roleFlag() cli.Flag {
	return &cli.StringFlag{Name: "role", Aliases: []string{"r"}, Value: "CLIENT", Usage: "CLIENT or FREELANCER"}
}

func newDashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "show dashboard counters and bounty lists",
		Flags: []cli.Flag{
			roleFlag(),
			&cli.StringFlag{Name: "status", Value: "ACTIVE"},
		},
		Action: func(c *cli.Context) error {
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			var (
				details  *api.DashboardDetails
				bounties []api.Record
				disputes []api.Record
			)
			g, ctx := errgroup.WithContext(c.Context)
			g.Go(func() error {
				var err error
				details, err = cl.API.DashboardDetails(ctx, role(c))
				return err
			})
			g.Go(func() error {
				var err error
				if role(c) == "FREELANCER" {
					bounties, err = cl.API.FreelancerBounties(ctx, c.String("status"))
				} else {
					bounties, err = cl.API.ClientBounties(ctx, c.String("status"))
				}
				return err
			})
			g.Go(func() error {
				var err error
				disputes, err = cl.API.DisputedBounties(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			if details != nil {
				table := tablewriter.NewWriter(os.Stdout)
				table.SetHeader([]string{"earned", "active", "completed", "payment pending", "disputed", "requested"})
				table.Append([]string{
					details.EarnedTaskReward.String(),
					fmt.Sprint(details.ActiveBountiesCount),
					fmt.Sprint(details.CompletedBountiesCount),
					fmt.Sprint(details.PaymentPendingBountiesCount),
					fmt.Sprint(details.DisputedBountiesCount),
					fmt.Sprint(details.RequestedBountiesCount),
				})
				table.Render()
			}
			fmt.Println(color.CyanString("%s bounties", strings.ToLower(c.String("status"))))
			printBounties(bounties)
			fmt.Println(color.CyanString("open disputes"))
			printBounties(disputes)
			return nil
		},
	}
}

func newBountiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "bounties",
		Usage: "list bounties",
		Flags: []cli.Flag{
			roleFlag(),
			&cli.StringFlag{Name: "status", Value: "ACTIVE"},
			&cli.StringFlag{Name: "type", Usage: "list open bounties of a task type instead"},
			&cli.BoolFlag{Name: "types", Usage: "list task types"},
		},
		Action: func(c *cli.Context) error {
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			switch {
			case c.Bool("types"):
				types, err := cl.API.BountyTypes(c.Context)
				if err != nil {
					return err
				}
				for _, t := range types {
					fmt.Println(t)
				}
				return nil
			case c.String("type") != "":
				list, err := cl.API.TaskTypeBounties(c.Context, c.String("type"))
				if err != nil {
					return err
				}
				printBounties(list)
				return nil
			case role(c) == "FREELANCER":
				list, err := cl.API.FreelancerBounties(c.Context, c.String("status"))
				if err != nil {
					return err
				}
				printBounties(list)
				return nil
			default:
				list, err := cl.API.ClientBounties(c.Context, c.String("status"))
				if err != nil {
					return err
				}
				printBounties(list)
				return nil
			}
		},
	}
}

func newMessagesCommand() *cli.Command {
	return &cli.Command{
		Name:      "messages",
		Usage:     "show or post a bounty's chat",
		ArgsUsage: "<bounty-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "post", Usage: "message to send"},
			&cli.BoolFlag{Name: "complaints", Usage: "use the complaint thread"},
		},
		Action: func(c *cli.Context) error {
			id, err := bountyArg(c)
			if err != nil {
				return err
			}
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			if text := c.String("post"); text != "" {
				if c.Bool("complaints") {
					_, err = cl.API.PostComplaint(c.Context, id, text)
				} else {
					_, err = cl.API.PostMessage(c.Context, id, text)
				}
				if err != nil {
					return err
				}
			}

			var thread []api.Record
			if c.Bool("complaints") {
				thread, err = cl.API.Complaints(c.Context, id)
			} else {
				thread, err = cl.API.Messages(c.Context, id)
			}
			if err != nil {
				return err
			}
			for _, m := range thread {
				fmt.Printf("%s %s: %s\n", color.HiBlackString(m.String("created_time")), color.CyanString(m.String("user")), m.String("message"))
			}
			return nil
		},
	}
}
