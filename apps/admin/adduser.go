package main

import (
	"context"

	"github.com/kazadi/elimu/core"
	"github.com/kazadi/elimu/core/user"
)

func (cli *commandLine) addUser(firstName, lastName, contact, email, roleName, pwd string) error {
	ctx := context.Background()

	rl, err := cli.roleSvc.GetByName(ctx, core.CleanString(roleName, true /* lower */))
	if err != nil {
		return err
	}

	nu := user.NewUser{
		FirstName: firstName,
		LastName:  lastName,
		Contact:   contact,
		Email:     email,
		Password:  pwd,
		Role:      rl.ID,
	}
	if err := nu.Validate(cli.validate); err != nil {
		return err
	}

	usr, _, err := cli.userSvc.Signup(ctx, nu)
	if err != nil {
		return err
	}
	logger.Printf("user %q created (id=%s)", usr.Email, usr.ID)
	return nil
}
