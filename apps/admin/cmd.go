package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/yaohuihuang316-coder/darasa/core/assignment"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db  *sql.DB
	svc *assignment.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
	fmt.Println("  close -assignment ID   - close an assignment regardless of grading progress")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	closeCmd := flag.NewFlagSet("close", flag.ExitOnError)
	closeID := closeCmd.String("assignment", "", "The assignment's ID.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "close":
		if err := closeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *closeID == "" {
			closeCmd.Usage()
			return errHelp
		}
		return cli.closeAssignment(*closeID)
	default:
		cli.printUsage()
		return errHelp
	}
}
