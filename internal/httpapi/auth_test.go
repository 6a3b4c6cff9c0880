package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	authsvc "github.com/vladislavdragonenkov/storefront/internal/service/auth"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newAuthAPI() http.Handler {
	svc := authsvc.NewService(memory.NewUserRepository(), auth.NewIssuer(testSecret, time.Hour), quietLogger())
	return NewHandler(quietLogger(), NewAuthHandler(svc, "auth-node", quietLogger()))
}

func TestRegisterLoginFlow(t *testing.T) {
	api := newAuthAPI()

	rec := do(t, api, http.MethodPost, "/register", "", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	registered := decodeBody[registerResponse](t, rec)
	assert.Equal(t, "alice", registered.User.Username)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = do(t, api, http.MethodPost, "/register", "", `{"username":"alice","password":"other"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, msgUserExists, errorMessage(t, rec))

	rec = do(t, api, http.MethodPost, "/login", "", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	login := decodeBody[loginResponse](t, rec)
	assert.Equal(t, registered.User.ID, login.User.ID)

	identity, err := auth.NewVerifier(testSecret).Verify("Bearer " + login.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, identity.SubjectID)
	assert.Equal(t, "alice", identity.DisplayName)
}

func TestAuthErrors(t *testing.T) {
	api := newAuthAPI()

	rec := do(t, api, http.MethodPost, "/register", "", `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username and password are required", errorMessage(t, rec))

	rec = do(t, api, http.MethodPost, "/login", "", `{"username":"ghost","password":"pw"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgInvalidCredentials, errorMessage(t, rec))
}
