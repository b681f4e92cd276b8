package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VehicleRegistry/VehicleRegistry/internal/common/auth"
	"github.com/VehicleRegistry/VehicleRegistry/internal/common/config"
)

func TestJWTAuthAndRequireRoles(t *testing.T) {
	authCfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
	}

	adminToken, _, err := auth.GenerateAccessToken(authCfg, "admin@example.com", []string{"Adm"}, time.Hour)
	if err != nil {
		t.Fatalf("generate admin token: %v", err)
	}
	editorToken, _, err := auth.GenerateAccessToken(authCfg, "editor@example.com", []string{"Editor"}, time.Hour)
	if err != nil {
		t.Fatalf("generate editor token: %v", err)
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ai, ok := AuthFromContext(r.Context())
		if !ok {
			t.Fatalf("missing auth info in ctx")
		}
		if ai.Email == "" {
			t.Fatalf("empty email in auth info")
		}
		w.WriteHeader(http.StatusOK)
	})
	protected := Chain(final, JWTAuth(authCfg, nil), RequireRoles("Adm"))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"admin allowed", "Bearer " + adminToken, http.StatusOK},
		{"editor forbidden", "Bearer " + editorToken, http.StatusForbidden},
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/administradores", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Fatalf("%s: status=%d want=%d", tc.name, rr.Code, tc.want)
		}
	}
}

func TestRequireRolesCaseInsensitive(t *testing.T) {
	authCfg := config.AuthConfig{Enabled: true, JWTSecret: "test-secret"}
	token, _, err := auth.GenerateAccessToken(authCfg, "admin@example.com", []string{"adm"}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), JWTAuth(authCfg, nil), RequireRoles("Adm"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", rr.Code)
	}
}
