package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	"geotodo/pkg/claims"
	"geotodo/pkg/user"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
)

var noSessUrls = map[string]string{
	"/api/auth/login":    http.MethodPost,
	"/api/auth/register": http.MethodPost,
}

// CheckJWT verifies the bearer token on every route outside noSessUrls and
// cross-checks the server-side session row, so a logged-out user's token
// stops working before its exp claim does.
func CheckJWT(sessions user.SessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := mux.CurrentRoute(r)
			template, err := route.GetPathTemplate()
			if err != nil {
				http.Error(w, "Route not found", http.StatusNotFound)
				return
			}

			if method, ok := noSessUrls[template]; ok && method == r.Method {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, `{"success":false,"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(auth, "Bearer ")

			hashSecretGetter := func(token *jwt.Token) (interface{}, error) {
				method, ok := token.Method.(*jwt.SigningMethodHMAC)
				if !ok || method.Alg() != "HS256" {
					http.Error(w, "bad sign method", http.StatusUnauthorized)
					return nil, nil
				}
				return []byte(os.Getenv("JWT_SECRET")), nil
			}

			parsed := &claims.Claims{}
			t, err := jwt.ParseWithClaims(token, parsed, hashSecretGetter)
			if err != nil || !t.Valid || parsed.Subject == "" {
				http.Error(w, `{"success":false,"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			ok, err := sessions.IsValid(parsed.Subject)
			if err != nil || !ok {
				http.Error(w, `{"success":false,"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claims.TokenContextKey, parsed)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
