package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/kazadi/elimu/core/role"
	"github.com/kazadi/elimu/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db       *sqlx.DB
	validate *validator.Validate
	roleSvc  *role.Service
	userSvc  *user.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate                                                      - apply pending database migrations")
	fmt.Println("  addrole -name NAME -description DESC                         - create a role")
	fmt.Println("  adduser -firstname F -lastname L -contact C -email E -role R - create a user; the password will be prompted")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addRoleCmd := flag.NewFlagSet("addrole", flag.ExitOnError)
	addRoleName := addRoleCmd.String("name", "", "The role's name.")
	addRoleDesc := addRoleCmd.String("description", "", "The role's description.")

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserFirstName := addUserCmd.String("firstname", "", "The user's first name.")
	addUserLastName := addUserCmd.String("lastname", "", "The user's last name.")
	addUserContact := addUserCmd.String("contact", "", "The user's phone contact.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserRole := addUserCmd.String("role", "", "The user's role name. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		return cli.migrate()
	case "addrole":
		if err := addRoleCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addRoleName == "" || *addRoleDesc == "" {
			addRoleCmd.Usage()
			return errHelp
		}
		return cli.addRole(*addRoleName, *addRoleDesc)
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" || *addUserRole == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserFirstName, *addUserLastName, *addUserContact, *addUserEmail, *addUserRole, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
