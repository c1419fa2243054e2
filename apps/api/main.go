package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	echoapi "github.com/kazadi/elimu/apps/api/echo"
	"github.com/kazadi/elimu/core"
	"github.com/kazadi/elimu/core/course"
	"github.com/kazadi/elimu/core/enrollment"
	"github.com/kazadi/elimu/core/role"
	"github.com/kazadi/elimu/core/user"
	aisvc "github.com/kazadi/elimu/services/ai"
	emailsvc "github.com/kazadi/elimu/services/email"
	logsvc "github.com/kazadi/elimu/services/logger"
	"github.com/kazadi/elimu/storage/database"
	sqlxrepos "github.com/kazadi/elimu/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if err := run(std); err != nil {
		std.Fatalf("error: %+v", err)
	}
}

func run(std *log.Logger) error {
	conf, err := core.NewConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer db.Close()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	roleRepo := sqlxrepos.NewRoleRepository(db)
	courseRepo := sqlxrepos.NewCourseRepository(db)
	userSvc := user.NewService(sqlxrepos.NewUserRepository(db), roleRepo, mailSvc)
	roleSvc := role.NewService(roleRepo)
	courseSvc := course.NewService(courseRepo)
	enrollmentSvc := enrollment.NewService(sqlxrepos.NewEnrollmentRepository(db), courseRepo)

	validate, translator := core.NewValidator()

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(&echoapi.Options{
		Conf:          conf,
		Logger:        logger,
		Validate:      validate,
		Translator:    translator,
		UserSvc:       userSvc,
		RoleSvc:       roleSvc,
		CourseSvc:     courseSvc,
		EnrollmentSvc: enrollmentSvc,
		Completer:     aisvc.NewOpenAIService(conf),
	}, shutdown)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening on " + conf.Server.Address)
		serverErrors <- app.Start()
	}()

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")
	case sig := <-shutdown:
		logger.Info("shutdown started", sig)

		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			return errors.Wrap(err, "could not stop server gracefully")
		}
		logger.Info("shutdown complete", sig)
	}
	return nil
}
