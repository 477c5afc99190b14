package middleware

import (
	"incident_flow_app_go/config"
	"incident_flow_app_go/db"
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "incident_flow_session"
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"

	msgLoginRequired = "Você não tem permissão para acessar a página anterior. Faça seu login!"
)

// RequireAuth is middleware that requires authentication
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Get session cookie
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				// No cookie, redirect to login
				return redirectToLogin(c)
			}

			// Validate session
			session, err := services.ValidateSession(db.DB, cookie.Value)
			if err != nil {
				// Invalid or expired session, clear cookie and redirect
				ClearSessionCookie(c)
				return redirectToLogin(c)
			}

			// Check if user is active
			if !session.User.IsActive {
				ClearSessionCookie(c)
				return redirectToLogin(c)
			}

			// Store user and session in context
			c.Set(ContextKeyUser, &session.User)
			c.Set(ContextKeySession, session)

			return next(c)
		}
	}
}

// redirectToLogin sends the unauthenticated user to the login page with a
// one-shot notice explaining why
func redirectToLogin(c echo.Context) error {
	SetFlashError(c, msgLoginRequired)
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", "/login")
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// RequireStaff is middleware that requires the staff flag
func RequireStaff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetCurrentUser(c)
			if user == nil || (!user.IsStaff && !user.IsSuperuser) {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// ClearSessionCookie clears the session cookie
func ClearSessionCookie(c echo.Context) {
	// Get config to check environment
	var isProduction bool
	if cfg, ok := c.Get("config").(*config.Config); ok {
		isProduction = cfg.Environment == "production"
	}

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}

// SetSessionCookie stores the session token in the browser
func SetSessionCookie(c echo.Context, token string, maxAge int) {
	var isProduction bool
	if cfg, ok := c.Get("config").(*config.Config); ok {
		isProduction = cfg.Environment == "production"
	}

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}
