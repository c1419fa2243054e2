package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/kazadi/elimu/core"
	"github.com/kazadi/elimu/core/course"
	"github.com/kazadi/elimu/core/enrollment"
	"github.com/kazadi/elimu/core/role"
	"github.com/kazadi/elimu/core/user"
	aisvc "github.com/kazadi/elimu/services/ai"
	emailsvc "github.com/kazadi/elimu/services/email"
	logsvc "github.com/kazadi/elimu/services/logger"
	dummydb "github.com/kazadi/elimu/storage/database/dummy"
)

var testConf = &core.Config{
	TestMode:  true,
	AppName:   "Elimu Test",
	Env:       "TEST",
	SecretKey: "test-secret-not-for-prod",
	Server: core.ServerConfig{
		JWTExpirationDelta: time.Hour,
		ShutdownTimeout:    time.Second,
	},
}

type testServer struct {
	Server

	UserSvc       *user.Service
	RoleSvc       *role.Service
	CourseSvc     *course.Service
	EnrollmentSvc *enrollment.Service
	Completer     *aisvc.ServiceMock
}

func setupServer(t *testing.T, completer *aisvc.ServiceMock) *testServer {
	t.Helper()

	db, err := dummydb.Open()
	require.NoError(t, err)

	roleRepo := dummydb.NewRoleRepository(db)
	courseRepo := dummydb.NewCourseRepository(db)
	userSvc := user.NewService(dummydb.NewUserRepository(db), roleRepo, emailsvc.NewConsoleServiceMock(testConf))
	roleSvc := role.NewService(roleRepo)
	courseSvc := course.NewService(courseRepo)
	enrollmentSvc := enrollment.NewService(dummydb.NewEnrollmentRepository(db), courseRepo)

	if completer == nil {
		completer = aisvc.NewServiceMock()
	}
	validate, translator := core.NewValidator()
	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	shutdown := make(chan os.Signal, 1)

	srv := NewServer(&Options{
		Conf:           testConf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
		UserSvc:        userSvc,
		RoleSvc:        roleSvc,
		CourseSvc:      courseSvc,
		EnrollmentSvc:  enrollmentSvc,
		Completer:      completer,
	}, shutdown)

	return &testServer{
		Server:        srv,
		UserSvc:       userSvc,
		RoleSvc:       roleSvc,
		CourseSvc:     courseSvc,
		EnrollmentSvc: enrollmentSvc,
		Completer:     completer,
	}
}

func newRequest(method, path string, body interface{}) *http.Request {
	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func newAuthRequest(method, path, token string, body interface{}) *http.Request {
	req := newRequest(method, path, body)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	return req
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	return rec
}

// seedRole creates a role directly through the service layer.
func (ts *testServer) seedRole(t *testing.T, name string) role.Role {
	t.Helper()
	rl, err := ts.RoleSvc.Create(context.Background(), role.NewRole{Name: name, Description: name + " role"})
	require.NoError(t, err)
	return rl
}

// seedUser creates a user with the given role and returns it along with a
// valid token for it.
func (ts *testServer) seedUser(t *testing.T, email, roleName string) (user.User, string) {
	t.Helper()
	rl, err := ts.RoleSvc.GetByName(context.Background(), roleName)
	if err != nil {
		rl = ts.seedRole(t, roleName)
	}
	usr, rl, err := ts.UserSvc.Signup(context.Background(), user.NewUser{
		FirstName: "Jane",
		LastName:  "Doe",
		Contact:   "+123 456 7890",
		Email:     email,
		Password:  "Secretz123",
		Role:      rl.ID,
	})
	require.NoError(t, err)

	token, err := GenerateToken(testConf, GetUserClaims(testConf, usr, rl))
	require.NoError(t, err)
	return usr, token
}

func (ts *testServer) seedCourse(t *testing.T, instructorID, title string) course.Course {
	t.Helper()
	crs, err := ts.CourseSvc.Create(context.Background(), instructorID, course.NewCourse{
		Title:       title,
		Description: "intro to " + title,
		Duration:    12,
		Content:     "syllabus for " + title,
	})
	require.NoError(t, err)
	return crs
}

func checkCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status; body: %s", rec.Body.String())
}

// decodeBody unmarshals the recorded JSON body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}

func errorField(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &body)
	return body.Error
}
