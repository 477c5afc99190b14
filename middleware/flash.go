package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// FlashCookieName carries a one-shot message across a redirect
const FlashCookieName = "incident_flow_flash"

// SetFlashError stores an error notice to be shown after the next redirect
func SetFlashError(c echo.Context, message string) {
	cookie := &http.Cookie{
		Name:     FlashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}

// PopFlash reads and clears the pending flash message, if any
func PopFlash(c echo.Context) string {
	cookie, err := c.Cookie(FlashCookieName)
	if err != nil {
		return ""
	}

	c.SetCookie(&http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

// RedirectHomeWithError converts an authorization failure into the
// redirect-with-notice the application promises: no partial data, no raised
// fault
func RedirectHomeWithError(c echo.Context, message string) error {
	SetFlashError(c, message)
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", "/")
		return c.NoContent(http.StatusForbidden)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
