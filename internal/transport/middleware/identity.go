package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hawlguard/zakat-backend/pkg/ctxutil"
)

// userIDHeader carries the caller identity asserted by the upstream gateway.
// This service does not authenticate; it trusts the gateway's assertion.
const userIDHeader = "X-User-Id"

// Identity extracts the asserted user id into the request context. Requests
// without a valid id are rejected before reaching any handler.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		if raw == "" {
			writeAuthError(w, "missing user identity")
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			writeAuthError(w, "invalid user identity")
			return
		}

		ctx := ctxutil.WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
