// Command bountyctl talks to the bounty board backend and the chain from a
// terminal.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"
)

var Version = "dev"

func main() {
	app := &cli.App{
		Name:      "bountyctl",
		Version:   Version,
		Usage:     "command line tool for the task bounty board",
		UsageText: "bountyctl [global options] command [command options] [args]",
		Flags:     globalFlags(),
		Before:    setupLogger,
		After:     syncLogger,
		Commands: []*cli.Command{
			newLoginCommand(),
			newLogoutCommand(),
			newRegisterCommand(),
			newWhoamiCommand(),
			newDashboardCommand(),
			newBountiesCommand(),
			newMessagesCommand(),
			newBalanceCommand(),
			newSessionCommand(),
			newPayloadCommand(),
			newWaitCommand(),
		},
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	sort.Sort(cli.FlagsByName(app.Flags))

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(1)
	}
}
