package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veld/veld/internal/accounts"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	as := &AppState{
		Logger:      zap.NewNop(),
		UserService: accounts.NewAccountService(accounts.NewInMemoryStore()),
	}
	return setupRouter(as)
}

func performRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func createUserRequest() map[string]string {
	return map[string]string{
		"name":     "Test User",
		"username": "testUsername",
		"password": "testPassword",
	}
}

func TestCreateUserEndpoint(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPost, "/users", createUserRequest(), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Test User", body["name"])
	assert.Equal(t, "testUsername", body["username"])
	assert.Equal(t, "OFFLINE", body["status"])
	assert.NotEmpty(t, body["creation_date"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "token")
}

func TestCreateUserEndpoint_DuplicateUsername(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPost, "/users", createUserRequest(), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(router, http.MethodPost, "/users", createUserRequest(), nil)
	require.Equal(t, http.StatusConflict, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "The username provided is not unique. Therefore, the user could not be created!", body["error"])
}

func TestCreateUserEndpoint_MissingFields(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPost, "/users", map[string]string{"name": "No Creds"}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListUsersEndpoint(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPost, "/users", createUserRequest(), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(router, http.MethodGet, "/users", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, float64(1), users[0]["id"])
	assert.Equal(t, "testUsername", users[0]["username"])
	assert.Equal(t, "OFFLINE", users[0]["status"])
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPost, "/users", createUserRequest(), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(router, http.MethodPost, "/login", map[string]string{
		"username": "testUsername",
		"password": "testPassword",
	}, nil)
	require.Equal(t, http.StatusAccepted, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "ONLINE", body["status"])
	assert.NotEmpty(t, body["token"])
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPost, "/users", createUserRequest(), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(router, http.MethodPost, "/login", map[string]string{
		"username": "testUsername",
		"password": "wrongPassword",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "invalid username or password", body["error"])
}

func TestLogoutEndpoint(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPost, "/users", createUserRequest(), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(router, http.MethodPost, "/login", map[string]string{
		"username": "testUsername",
		"password": "testPassword",
	}, nil)
	require.Equal(t, http.StatusAccepted, recorder.Code)
	token := decodeBody(t, recorder)["token"].(string)

	recorder = performRequest(router, http.MethodPut, "/logout", map[string]string{"token": token}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "true", recorder.Body.String())
}

func TestLogoutEndpoint_UnknownToken(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPut, "/logout", map[string]string{"token": "no-such-token"}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "true", recorder.Body.String())
}

func TestGetUserEndpoint(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPost, "/users", createUserRequest(), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(router, http.MethodPost, "/login", map[string]string{
		"username": "testUsername",
		"password": "testPassword",
	}, nil)
	require.Equal(t, http.StatusAccepted, recorder.Code)
	token := decodeBody(t, recorder)["token"].(string)

	recorder = performRequest(router, http.MethodGet, "/users/1", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "testUsername", body["username"])
	assert.Equal(t, "ONLINE", body["status"])
}

func TestGetUserEndpoint_BadToken(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPost, "/users", createUserRequest(), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(router, http.MethodGet, "/users/1", nil, map[string]string{
		"Authorization": "Bearer stale-token",
	})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "Authorization failed", body["error"])
}

func TestGetUserEndpoint_NotFound(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPost, "/users", createUserRequest(), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(router, http.MethodPost, "/login", map[string]string{
		"username": "testUsername",
		"password": "testPassword",
	}, nil)
	require.Equal(t, http.StatusAccepted, recorder.Code)
	token := decodeBody(t, recorder)["token"].(string)

	recorder = performRequest(router, http.MethodGet, "/users/999", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusNotFound, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "User not found", body["error"])
}

func TestUpdateUserEndpoint(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPost, "/users", createUserRequest(), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(router, http.MethodPut, "/users/1", map[string]string{
		"username": "newUsername",
		"birthday": "02.02.1992",
	}, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())

	recorder = performRequest(router, http.MethodGet, "/users", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "newUsername", users[0]["username"])
	assert.Equal(t, "02.02.1992", users[0]["birthday"])
}

func TestUpdateUserEndpoint_NotFound(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodPut, "/users/999", map[string]string{
		"username": "newUsername",
	}, nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "User not found", body["error"])
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	recorder := performRequest(router, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "healthy", body["status"])
}
