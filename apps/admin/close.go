package main

import (
	"context"
	"fmt"

	"github.com/yaohuihuang316-coder/darasa/core/assignment"
)

// cliActor is the identity administrative commands run as.
var cliActor = assignment.Actor{ID: "admin-cli", Role: assignment.RoleAdmin}

// closeAssignment closes an assignment explicitly, e.g. after its deadline
// passed with submissions still ungraded.
func (cli *commandLine) closeAssignment(id string) error {
	a, err := cli.svc.CloseAssignment(context.Background(), cliActor, id)
	if err != nil {
		return err
	}
	fmt.Printf("assignment %s (%s) closed\n", a.ID, a.Title)
	return nil
}
