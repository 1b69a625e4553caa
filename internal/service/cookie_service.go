package service

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/haatos/simple-shop/internal"
	"github.com/haatos/simple-shop/internal/store"
	"github.com/labstack/echo/v4"
)

type CookieService struct {
	s      *securecookie.SecureCookie
	domain string
}

func NewCookieService(hashKey, blockKey []byte, domain string) *CookieService {
	return &CookieService{
		s:      securecookie.New(hashKey, blockKey),
		domain: domain,
	}
}

func (cs *CookieService) GetSessionID(c echo.Context) (string, error) {
	cookie, err := c.Cookie(internal.SessionCookie)
	if err != nil {
		return "", err
	}
	values := make(map[string]string)
	if err := cs.s.Decode(internal.SessionCookie, cookie.Value, &values); err != nil {
		return "", err
	}
	return values["session_id"], nil
}

// SetSessionCookie stores the session id in an encrypted cookie. A session
// without expiry gets a ten year cookie.
func (cs *CookieService) SetSessionCookie(c echo.Context, as *store.AuthSession) error {
	expires := time.Now().UTC().AddDate(10, 0, 0)
	if as.AuthSessionExpires.Valid {
		expires = as.AuthSessionExpires.Time
	}
	return cs.setCookie(
		c,
		internal.SessionCookie,
		map[string]string{"session_id": as.AuthSessionID},
		"/",
		cs.domain != "localhost",
		true,
		expires,
		cs.domain,
	)
}

func (cs *CookieService) RemoveSessionCookie(c echo.Context) {
	cookie := &http.Cookie{
		Name:     internal.SessionCookie,
		Value:    "",
		Path:     "/",
		Secure:   cs.domain != "localhost",
		HttpOnly: true,
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		Domain:   cs.domain,
	}
	c.SetCookie(cookie)
}

func (cs *CookieService) setCookie(
	c echo.Context,
	name string,
	values map[string]string,
	path string,
	secure, httpOnly bool,
	expires time.Time,
	domain string,
) error {
	encoded, err := cs.s.Encode(name, values)
	if err != nil {
		return err
	}
	cookie := &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     path,
		Secure:   secure,
		HttpOnly: httpOnly,
		Expires:  expires,
		Domain:   domain,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
	return nil
}
