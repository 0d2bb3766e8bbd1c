// Package shared holds request plumbing used by every page handler.
package shared

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
)

const (
	// CSRFCookieName is the cookie carrying the per-browser nonce.
	CSRFCookieName = "showcase_csrf"
	// CSRFFormField is the form field name carrying the CSRF token.
	CSRFFormField = "csrf_token"
	// CSRFHeader is the request header accepted in place of the form field.
	CSRFHeader = "X-CSRF-Token"
)

const nonceBytes = 18

// CSRFManager issues and verifies CSRF tokens bound to a browser cookie.
// Tokens are an HMAC of the cookie nonce so no server-side state is kept.
type CSRFManager struct {
	secret []byte
	secure bool
}

// NewCSRFManager returns a CSRFManager using the provided secret key.
// secureCookie marks the nonce cookie Secure.
func NewCSRFManager(secret string, secureCookie bool) *CSRFManager {
	return &CSRFManager{secret: []byte(secret), secure: secureCookie}
}

// EnsureToken returns the token for the request's nonce cookie, setting a
// fresh cookie on w when the request carries none.
func (m *CSRFManager) EnsureToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CSRFCookieName); err == nil && validNonce(cookie.Value) {
		return m.sign(cookie.Value), nil
	}
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	nonce := base64.RawURLEncoding.EncodeToString(buf)
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    nonce,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return m.sign(nonce), nil
}

// VerifyToken compares the supplied token with the one derived from the
// request's nonce cookie.
func (m *CSRFManager) VerifyToken(r *http.Request, token string) error {
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil || !validNonce(cookie.Value) {
		return ErrCSRFTokenMissing
	}
	if token == "" {
		return ErrCSRFTokenMissing
	}
	if !hmac.Equal([]byte(m.sign(cookie.Value)), []byte(token)) {
		return ErrCSRFTokenMismatch
	}
	return nil
}

func (m *CSRFManager) sign(nonce string) string {
	mac := hmac.New(sha256.New, m.secret)
	_, _ = mac.Write([]byte(nonce))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func validNonce(nonce string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(nonce)
	return err == nil && len(raw) == nonceBytes
}
