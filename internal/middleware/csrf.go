package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFFieldName is the hidden form field carrying the token.
const CSRFFieldName = "csrf_token"

// CSRF protects HTML form posts with gorilla/csrf. When disabled it passes through.
func CSRF(enabled bool, key []byte, secure bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.FieldName(CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Your session form expired. Go back, reload the page and try again.", http.StatusForbidden)
		})),
	)
	return func(c *gin.Context) {
		passed := false
		protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

// CSRFToken returns the token for the current request, or "" when protection is off.
func CSRFToken(c *gin.Context) string {
	return csrf.Token(c.Request)
}
