package main

import (
	"log"
	"os"

	"github.com/kazadi/elimu/core"
	"github.com/kazadi/elimu/core/role"
	"github.com/kazadi/elimu/core/user"
	emailsvc "github.com/kazadi/elimu/services/email"
	"github.com/kazadi/elimu/storage/database"
	sqlxrepos "github.com/kazadi/elimu/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	roleRepo := sqlxrepos.NewRoleRepository(db)
	validate, _ := core.NewValidator()

	// start CLI
	cli := commandLine{
		db:       db,
		validate: validate,
		roleSvc:  role.NewService(roleRepo),
		userSvc:  user.NewService(sqlxrepos.NewUserRepository(db), roleRepo, emailsvc.NewConsoleService(conf)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
