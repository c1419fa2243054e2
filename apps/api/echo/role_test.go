package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kazadi/elimu/core/role"
)

func TestRoleCreate(t *testing.T) {
	ts := setupServer(t, nil)
	_, token := ts.seedUser(t, "admin@test.cd", role.Instructor)

	body := map[string]string{
		"roleName":        "Student",
		"roleDescription": "Course consumer",
	}

	rec := ts.do(newAuthRequest(http.MethodPost, "/role", token, body))
	checkCode(t, rec, http.StatusCreated)

	var resp MessageResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "role created successfully", resp.Message)

	// names are lowercased before storage
	rl, err := ts.RoleSvc.GetByName(context.Background(), "student")
	assert.NoError(t, err)
	assert.Equal(t, "student", rl.Name)

	t.Run("duplicate name", func(t *testing.T) {
		rec := ts.do(newAuthRequest(http.MethodPost, "/role", token, body))
		checkCode(t, rec, http.StatusBadRequest)
		assert.Equal(t, "role already exists", errorField(t, rec))
	})

	t.Run("requires auth", func(t *testing.T) {
		rec := ts.do(newRequest(http.MethodPost, "/role", body))
		checkCode(t, rec, http.StatusUnauthorized)
	})
}
