package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"creatorfund/utils"
)

func TestRequireRole(t *testing.T) {
	handler := RequireRole("creator", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(role string) int {
		req := httptest.NewRequest("POST", "http://example.local/api/channels", nil)
		if role != "" {
			ctx := context.WithValue(req.Context(), utils.UserRoleKey, role)
			req = req.WithContext(ctx)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := serve("creator"); code != http.StatusNoContent {
		t.Fatalf("expected matching role to pass, got %d", code)
	}
	if code := serve("investor"); code != http.StatusForbidden {
		t.Fatalf("expected mismatched role to be rejected, got %d", code)
	}
	if code := serve(""); code != http.StatusForbidden {
		t.Fatalf("expected missing role to be rejected, got %d", code)
	}
}
