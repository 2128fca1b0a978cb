package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUserBody() map[string]interface{} {
	return map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "hunter2hunter2",
	}
}

func TestGetLiveness(t *testing.T) {
	router, _ := newTestRouter(nil)

	w := doJSON(router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestCreateUser(t *testing.T) {
	router, store := newTestRouter(nil)

	w := doJSON(router, http.MethodPost, "/users", validUserBody())
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotEmpty(t, body["created_at"])
	assert.Equal(t, body["created_at"], body["modified_at"])
	assert.Equal(t, 1, store.Count())
}

func TestCreateUser_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]interface{})
		message string
	}{
		{"missing username", func(m map[string]interface{}) { delete(m, "username") }, "username is required"},
		{"missing email", func(m map[string]interface{}) { delete(m, "email") }, "email is required"},
		{"missing password", func(m map[string]interface{}) { delete(m, "password") }, "password is required"},
		{"short username", func(m map[string]interface{}) { m["username"] = "ab" }, "username"},
		{"malformed email", func(m map[string]interface{}) { m["email"] = "a@b" }, "email"},
		{"short password", func(m map[string]interface{}) { m["password"] = "1234567" }, "password"},
		{"non-string username", func(m map[string]interface{}) { m["username"] = 42 }, "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store := newTestRouter(nil)

			body := validUserBody()
			tt.mutate(body)
			w := doJSON(router, http.MethodPost, "/users", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeBody(t, w)
			assert.Equal(t, "invalid_input", resp["error"])
			assert.Contains(t, resp["error_description"], tt.message)
			assert.Equal(t, 0, store.Count(), "rejected create must not mutate the store")
		})
	}
}

func TestCreateUser_MalformedBody(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_input", decodeBody(t, w)["error"])
}

func TestCreateUser_ReservedFieldsStripped(t *testing.T) {
	router, _ := newTestRouter(nil)

	body := validUserBody()
	body["id"] = 999
	body["created_at"] = "1999-01-01T00:00:00Z"
	w := doJSON(router, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, float64(1), resp["id"], "client-supplied id is ignored")
	assert.NotEqual(t, "1999-01-01T00:00:00Z", resp["created_at"])
}

func TestGetUser(t *testing.T) {
	router, store := newTestRouter(nil)
	u := store.Create(validUserBody())

	t.Run("existing", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/users/1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, float64(u.Id), resp["id"])
		assert.Equal(t, "alice", resp["username"])
	})

	t.Run("absent id", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/users/99", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", decodeBody(t, w)["error"])
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/users/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_id", decodeBody(t, w)["error"])
	})

	t.Run("negative id", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/users/-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListUsers(t *testing.T) {
	router, store := newTestRouter(nil)

	t.Run("empty store", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/users", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	t.Run("insertion order", func(t *testing.T) {
		store.Create(map[string]interface{}{"username": "first"})
		store.Create(map[string]interface{}{"username": "second"})

		w := doJSON(router, http.MethodGet, "/users", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.Less(t, strings.Index(body, "first"), strings.Index(body, "second"))
	})
}

func TestUpdateUser(t *testing.T) {
	router, store := newTestRouter(nil)
	u := store.Create(validUserBody())

	t.Run("merges submitted fields", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, "/users/1", map[string]interface{}{
			"email": "new@example.com",
			"plan":  "pro",
		})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeBody(t, w)
		assert.Equal(t, "new@example.com", resp["email"])
		assert.Equal(t, "pro", resp["plan"])
		assert.Equal(t, "alice", resp["username"], "unsubmitted fields survive")

		kept, err := store.Get(u.Id)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", kept.Fields["email"])
	})

	t.Run("invalid supplied field", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, "/users/1", map[string]interface{}{"email": "bad"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("absent id", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, "/users/99", map[string]interface{}{"plan": "pro"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	router, store := newTestRouter(nil)
	store.Create(validUserBody())

	w := doJSON(router, http.MethodDelete, "/users/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, 0, store.Count())

	t.Run("second delete is not found", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/users/1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
