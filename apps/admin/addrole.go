package main

import (
	"context"

	"github.com/kazadi/elimu/core/role"
)

func (cli *commandLine) addRole(name, description string) error {
	nr := role.NewRole{Name: name, Description: description}
	if err := nr.Validate(cli.validate); err != nil {
		return err
	}

	rl, err := cli.roleSvc.Create(context.Background(), nr)
	if err != nil {
		return err
	}
	logger.Printf("role %q created (id=%s)", rl.Name, rl.ID)
	return nil
}
