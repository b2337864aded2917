package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/stepm01/cruzHacks/core/student"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db   *sqlx.DB
	repo student.Repository
	out  io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (up, down, status, ...)")
	fmt.Println("  token -uid UID [-name NAME] [-email EMAIL] - mint a DEV session token")
	fmt.Println("  loadsample -uid UID - load the sample transcript for a student")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	tokenUID := tokenCmd.String("uid", "", "The student's UID (subject claim).")
	tokenName := tokenCmd.String("name", "", "The student's display name claim.")
	tokenEmail := tokenCmd.String("email", "", "The student's email claim.")

	sampleCmd := flag.NewFlagSet("loadsample", flag.ExitOnError)
	sampleUID := sampleCmd.String("uid", "", "The student's UID to attach the sample transcript to.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenUID == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenUID, *tokenName, *tokenEmail)
	case "loadsample":
		if err := sampleCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *sampleUID == "" {
			sampleCmd.Usage()
			return errHelp
		}
		return cli.loadSample(*sampleUID)
	default:
		cli.printUsage()
		return errHelp
	}
}
