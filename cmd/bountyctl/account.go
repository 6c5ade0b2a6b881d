package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/api"
)

func newLoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true, EnvVars: []string{"BOUNTYCTL_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			resp, err := cl.API.Login(c.Context, api.Credentials{
				Username: c.String("username"),
				Password: c.String("password"),
			})
			if err != nil {
				return err
			}
			if resp.Token == "" {
				return fmt.Errorf("login rejected: %s", resp.Message)
			}
			fmt.Printf("%s logged in as %s (%s)\n", color.GreenString("ok"), c.String("username"), resp.UserRole)
			return nil
		},
	}
}

func newLogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "end the session and forget the wallet",
		Action: func(c *cli.Context) error {
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			if _, err := cl.Logout(c.Context); err != nil {
				if auth, aerr := cl.Session.Auth(context.WithoutCancel(c.Context)); aerr != nil || auth.Authenticated() {
					return fmt.Errorf("logout failed and the local session was not cleared: %w", err)
				}
				fmt.Println(color.YellowString("backend logout failed (%s); local session cleared", api.ErrorMessage(err)))
				return nil
			}
			fmt.Println(color.GreenString("logged out"))
			return nil
		},
	}
}

func newRegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"BOUNTYCTL_PASSWORD"}},
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "first-name"},
			&cli.StringFlag{Name: "last-name"},
			&cli.StringFlag{Name: "role", Usage: "CLIENT or FREELANCER"},
			&cli.StringFlag{Name: "company"},
			&cli.StringFlag{Name: "linkedin"},
		},
		Action: func(c *cli.Context) error {
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			out, err := cl.API.Register(c.Context, api.RegisterRequest{
				Username:            c.String("username"),
				Password:            c.String("password"),
				Email:               c.String("email"),
				FirstName:           c.String("first-name"),
				LastName:            c.String("last-name"),
				UserRole:            c.String("role"),
				CompanyName:         c.String("company"),
				LinkedinProfileLink: c.String("linkedin"),
			})
			if err != nil {
				return err
			}
			msg := out.String("message")
			if msg == "" {
				msg = "registered"
			}
			fmt.Println(color.GreenString(msg))
			return nil
		},
	}
}

func newWhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the logged in user's profile",
		Action: func(c *cli.Context) error {
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			u, err := cl.API.UserDetails(c.Context)
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("no profile returned")
			}
			fmt.Printf("%s %s (%s)\n", u.FirstName, u.LastName, u.Username)
			if u.Rating != "" {
				fmt.Printf("rating: %s from %s reviews\n", u.Rating, u.NumOfRating)
			}
			if u.LinkedinProfileLink != "" {
				fmt.Println(u.LinkedinProfileLink)
			}
			return nil
		},
	}
}
