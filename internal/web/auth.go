package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bcsi-site/internal/handler"
	"github.com/noah-isme/bcsi-site/internal/middleware"
	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

// SessionCookie describes the cookie carrying the access token for HTML pages.
type SessionCookie struct {
	Name   string
	Secure bool
}

// Auth serves the HTML sign in and sign out flow.
type Auth struct {
	service  handler.AuthUseCases
	cookie   SessionCookie
	renderer *Renderer
	onLogout func(userID string)
}

// NewAuth builds the flow. onLogout runs after a successful sign out and may be nil.
func NewAuth(svc handler.AuthUseCases, cookie SessionCookie, renderer *Renderer, onLogout func(userID string)) *Auth {
	return &Auth{service: svc, cookie: cookie, renderer: renderer, onLogout: onLogout}
}

type loginView struct {
	Email string
	Error string
}

const adminHome = "/admin/announcements"

func (a *Auth) LoginForm(c *gin.Context) {
	if middleware.ClaimsFrom(c) != nil {
		c.Redirect(http.StatusSeeOther, adminHome)
		return
	}
	a.renderer.HTML(c, http.StatusOK, "login", "Sign in", loginView{})
}

func (a *Auth) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		a.renderer.HTML(c, http.StatusBadRequest, "login", "Sign in", loginView{Email: req.Email, Error: "Enter your email and password"})
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := a.service.Login(c.Request.Context(), req)
	if err != nil {
		appErr := appErrors.FromError(err)
		a.renderer.HTML(c, appErr.Status, "login", "Sign in", loginView{Email: req.Email, Error: appErr.Message})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookie.Name, res.AccessToken, int(res.ExpiresIn), "/", "", a.cookie.Secure, true)
	c.Redirect(http.StatusSeeOther, adminHome)
}

// Logout revokes the session when there is one and always clears the cookie.
func (a *Auth) Logout(c *gin.Context) {
	if claims := middleware.ClaimsFrom(c); claims != nil {
		meta := models.LoginRequest{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
		if err := a.service.Logout(c.Request.Context(), claims, meta); err != nil {
			_ = c.Error(err)
		}
		if a.onLogout != nil {
			a.onLogout(claims.UserID)
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookie.Name, "", -1, "/", "", a.cookie.Secure, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// RequireSession sends visitors without valid claims to the sign in page.
// It must run after middleware.OptionalJWT.
func RequireSession(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		if len(allowed) > 0 {
			if _, ok := allowed[claims.Role]; !ok {
				c.String(http.StatusForbidden, "You do not have access to this page.")
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
