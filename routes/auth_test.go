package routes

import (
	"net/http"
	"testing"
)

func signupPayload(email string) map[string]string {
	return map[string]string{
		"full_name": "Alice Example",
		"email":     email,
		"password":  "longenoughpw",
		"phone":     "555-0100",
	}
}

func TestSignupAndLogin(t *testing.T) {
	router, _ := setupTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", signupPayload("alice@example.com"))
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	tokens := body["tokens"].(map[string]interface{})
	if tokens["access_token"] == "" || tokens["refresh_token"] == "" {
		t.Fatal("signup must hand back a token pair")
	}

	// Same email again is a conflict
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", signupPayload("alice@example.com"))
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", w.Code)
	}

	// Wrong password
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", w.Code)
	}

	// Correct credentials
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "longenoughpw",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	tokens = body["tokens"].(map[string]interface{})
	access := tokens["access_token"].(string)

	// Token works against a protected endpoint
	w = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}
	user := decodeBody(t, w)["user"].(map[string]interface{})
	if user["email"] != "alice@example.com" {
		t.Fatalf("me returned wrong user: %v", user["email"])
	}
	if _, exposed := user["password_hash"]; exposed {
		t.Fatal("password hash must never serialize")
	}
}

func TestSignupValidation(t *testing.T) {
	router, _ := setupTestServer(t)

	tests := []struct {
		name  string
		patch func(map[string]string)
	}{
		{"missing email", func(p map[string]string) { delete(p, "email") }},
		{"bad email", func(p map[string]string) { p["email"] = "not-an-email" }},
		{"short password", func(p map[string]string) { p["password"] = "short" }},
		{"missing name", func(p map[string]string) { delete(p, "full_name") }},
	}

	for _, tt := range tests {
		payload := signupPayload("alice@example.com")
		tt.patch(payload)
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", payload)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tt.name, w.Code)
		}
	}
}

func TestRefreshAndLogout(t *testing.T) {
	router, _ := setupTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", signupPayload("alice@example.com"))
	tokens := decodeBody(t, w)["tokens"].(map[string]interface{})
	refresh := tokens["refresh_token"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": refresh})
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", "", map[string]string{"refresh_token": refresh})
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	// Revoked token no longer refreshes
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": refresh})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout: expected 401, got %d", w.Code)
	}
}
