package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireIdentityAttachesCaller(t *testing.T) {
	m := NewIdentityMiddleware()

	var gotID, gotRole string
	handler := m.RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, role, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Fatal("identity missing from context")
		}
		gotID, gotRole = id, role
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "T1")
	req.Header.Set(HeaderUserRole, "teacher")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotID != "T1" || gotRole != "teacher" {
		t.Fatalf("identity = (%q, %q), want (T1, teacher)", gotID, gotRole)
	}
}

func TestRequireIdentityRejectsMissingHeaders(t *testing.T) {
	m := NewIdentityMiddleware()

	handler := m.RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without identity")
	}))

	for _, tc := range []struct {
		name string
		id   string
		role string
	}{
		{"no headers", "", ""},
		{"missing role", "T1", ""},
		{"missing id", "", "teacher"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.id != "" {
				req.Header.Set(HeaderUserID, tc.id)
			}
			if tc.role != "" {
				req.Header.Set(HeaderUserRole, tc.role)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestIdentityFromContextWithoutIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, _, ok := IdentityFromContext(req.Context()); ok {
		t.Fatal("expected ok=false on bare context")
	}
}
