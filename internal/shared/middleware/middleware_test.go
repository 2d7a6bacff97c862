package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-api/internal/domains/account/model"
	"bookstore-api/internal/shared/response"
	"bookstore-api/pkg/jwt"
)

// stubAuthorizer fails with err when set and records what it was asked
type stubAuthorizer struct {
	err       error
	gotToken  string
	gotRoles  []model.Role
	callCount int
}

func (s *stubAuthorizer) Authorize(token string, roles []model.Role) (*jwt.Claims, error) {
	s.callCount++
	s.gotToken = token
	s.gotRoles = roles
	if s.err != nil {
		return nil, s.err
	}
	return &jwt.Claims{NameID: "acc-1", Roles: []string{"Customer"}}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(auth Authorizer, policy Policy) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/thing", Authorize(auth, policy), func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if ok {
			c.JSON(http.StatusOK, gin.H{"nameid": claims.NameID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"nameid": ""})
	})
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/thing", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthorizeAnonymousSkipsCheck(t *testing.T) {
	auth := &stubAuthorizer{err: model.ErrTokenInvalid}
	rec := do(newRouter(auth, Anonymous()), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, auth.callCount)
}

func TestAuthorizePassesRolesAndSetsClaims(t *testing.T) {
	auth := &stubAuthorizer{}
	rec := do(newRouter(auth, RequireRoles(model.RoleAdministrator, model.RoleCustomer)), "Bearer good")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "good", auth.gotToken)
	assert.Equal(t, []model.Role{model.RoleAdministrator, model.RoleCustomer}, auth.gotRoles)
	assert.JSONEq(t, `{"nameid":"acc-1"}`, rec.Body.String())
}

func TestAuthorizeFailures(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
		status int
		code   string
	}{
		{"missing header", "", nil, http.StatusUnauthorized, response.CodeUnauthorized},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized, response.CodeUnauthorized},
		{"empty token", "Bearer ", nil, http.StatusUnauthorized, response.CodeUnauthorized},
		{"expired", "Bearer t", model.ErrTokenExpired, http.StatusUnauthorized, response.CodeUnauthorized},
		{"invalid", "Bearer t", model.ErrTokenInvalid, http.StatusUnauthorized, response.CodeUnauthorized},
		{"forbidden", "Bearer t", model.ErrForbidden, http.StatusForbidden, response.CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newRouter(&stubAuthorizer{err: tt.err}, Authenticated()), tt.header)

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestExpiredAndInvalidLookTheSame(t *testing.T) {
	expired := do(newRouter(&stubAuthorizer{err: model.ErrTokenExpired}, Authenticated()), "Bearer t")
	invalid := do(newRouter(&stubAuthorizer{err: model.ErrTokenInvalid}, Authenticated()), "Bearer t")

	assert.Equal(t, expired.Code, invalid.Code)
	assert.Equal(t, expired.Body.String(), invalid.Body.String())
}

func TestAuthorizeWithRealTokens(t *testing.T) {
	tokens := jwt.NewManager("middleware-secret-long-enough-32b", "bookstore", time.Minute)
	auth := authorizerFunc(func(token string, roles []model.Role) (*jwt.Claims, error) {
		claims, err := tokens.Validate(token)
		if err != nil {
			return nil, model.ErrTokenInvalid
		}
		return claims, nil
	})

	token, err := tokens.Generate("a@b.com", "acc-9", nil)
	require.NoError(t, err)

	rec := do(newRouter(auth, Authenticated()), "bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"nameid":"acc-9"}`, rec.Body.String())
}

type authorizerFunc func(string, []model.Role) (*jwt.Claims, error)

func (f authorizerFunc) Authorize(token string, roles []model.Role) (*jwt.Claims, error) {
	return f(token, roles)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestRecoveryReturnsGenericError(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("secret internals") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret internals")
	body := decode(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, response.InternalErrorMessage, body.Error.Message)
}

func TestClientIPAndLogger(t *testing.T) {
	r := gin.New()
	r.Use(ClientIP(), Logger(), Metrics())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyClientIP)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.4")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "198.51.100.4", rec.Body.String())
}
