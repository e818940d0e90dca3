package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db      *sqlx.DB
	conf    *core.Config
	svc     attendance.Service
	mailSvc core.EmailService
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args...] - run database migrations (goose commands)")
	fmt.Println("  radardigest -cohort ID -epic ID - email the drop-out radar digest to the alert recipients")
	fmt.Println("  servicetoken -client NAME - generate a signed API token for a calling service")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	radarCmd := flag.NewFlagSet("radardigest", flag.ExitOnError)
	radarCohort := radarCmd.String("cohort", "", "The cohort ID to scan.")
	radarEpic := radarCmd.String("epic", "", "The epic ID to scan.")

	tokenCmd := flag.NewFlagSet("servicetoken", flag.ExitOnError)
	tokenClient := tokenCmd.String("client", "", "The calling service's name.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "radardigest":
		if err := radarCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *radarCohort == "" || *radarEpic == "" {
			radarCmd.Usage()
			return errHelp
		}
		return cli.radarDigest(*radarCohort, *radarEpic)
	case "servicetoken":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenClient == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.serviceToken(*tokenClient)
	default:
		cli.printUsage()
		return errHelp
	}
}
