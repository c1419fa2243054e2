package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/kazadi/elimu/core"
	"github.com/kazadi/elimu/core/course"
	"github.com/kazadi/elimu/core/enrollment"
	"github.com/kazadi/elimu/core/role"
	"github.com/kazadi/elimu/core/suggestion"
	"github.com/kazadi/elimu/core/user"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool

		UserSvc       *user.Service
		RoleSvc       *role.Service
		CourseSvc     *course.Service
		EnrollmentSvc *enrollment.Service
		Completer     suggestion.Completer
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

// NewServer builds the API server. signalShutdown is signalled whenever a
// request fails with an integrity error that warrants a graceful restart.
func NewServer(opts *Options, shutdown chan<- os.Signal) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup(func() { shutdown <- syscall.SIGTERM })
	return s
}

func (s *server) setup(signalShutdown func()) {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/health", health)

	authGuard := authGuardMiddleware(conf)

	registerUserAPI(s.app, conf, s.opts.UserSvc, s.opts.Validate)
	registerRoleAPI(s.app, authGuard, s.opts.RoleSvc, s.opts.Validate)
	registerCourseAPI(s.app, authGuard, s.opts.CourseSvc, s.opts.Validate)
	registerEnrollmentAPI(s.app, authGuard, s.opts.EnrollmentSvc)
	registerSuggestionAPI(s.app, authGuard, s.opts.Completer, s.opts.Logger)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Conf.Server.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "OK"})
}
