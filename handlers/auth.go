package handlers

import (
	"incident_flow_app_go/db"
	"incident_flow_app_go/middleware"
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// LoginRequest is the login form payload
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginPostHandler authenticates by email and opens a session
func LoginPostHandler(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Email and password are required",
		})
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		services.LogSecurityEvent("LOGIN_FAILED", req.Email, "Unknown email")
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid credentials",
		})
	}

	if !user.IsActive {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Account is inactive",
		})
	}

	if !services.CheckPassword(req.Password, user.Password) {
		services.LogSecurityEvent("LOGIN_FAILED", user.ID, "Wrong password")
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid credentials",
		})
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create session",
		})
	}

	now := time.Now()
	db.DB.Model(&user).Update("last_login_at", now)

	middleware.SetSessionCookie(c, session.Token, int(services.DefaultSessionDuration.Seconds()))
	services.LogSecurityEvent("LOGIN_SUCCESS", user.ID, "Session created")

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logged in",
	})
}

// LogoutHandler closes the current session
func LogoutHandler(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil {
		if err := services.DeleteSession(db.DB, cookie.Value); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Failed to logout",
			})
		}
	}

	middleware.ClearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logged out",
	})
}

// GetCurrentUserHandler returns the authenticated user's profile
func GetCurrentUserHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Not authenticated",
		})
	}
	return c.JSON(http.StatusOK, user)
}

// HomeHandler is the application's home surface; authorization failures land
// here with a flash notice
func HomeHandler(c echo.Context) error {
	payload := map[string]string{
		"application": "incident-flow",
	}
	if flash := middleware.PopFlash(c); flash != "" {
		payload["error"] = flash
	}
	return c.JSON(http.StatusOK, payload)
}
