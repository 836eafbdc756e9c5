package middleware

import (
	"net/http"

	"github.com/ankaa/payroll-backend-go/internal/domain/auth"
	"github.com/ankaa/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireCompany rejects tokens that carry no company_id or user_id. Every
// payroll query is scoped by both.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrCompanyIDRequired)
			return
		}

		companyID, _ := claims["company_id"].(string)
		if companyID == "" {
			response.HandleError(w, auth.ErrCompanyIDRequired)
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			response.HandleError(w, auth.ErrMissingAccessClaims)
			return
		}

		next.ServeHTTP(w, r)
	})
}
