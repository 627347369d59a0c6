// Package session issues and checks the operator's admin cookie.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "admin_session"
	Marker     = "authenticated"
	MaxAge     = 24 * time.Hour
)

// Codec turns the session marker into a cookie value and back.
type Codec interface {
	Encode(now time.Time) (string, error)
	Valid(value string, now time.Time) bool
}

// MarkerCodec stores the bare marker. Validity is an exact match.
type MarkerCodec struct{}

func (MarkerCodec) Encode(time.Time) (string, error) { return Marker, nil }

func (MarkerCodec) Valid(value string, _ time.Time) bool { return value == Marker }

// JWTCodec wraps the marker in an HS256 token whose exp matches the cookie max-age.
type JWTCodec struct {
	key []byte
}

func NewJWTCodec(key []byte) *JWTCodec {
	return &JWTCodec{key: key}
}

func (c *JWTCodec) Encode(now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": Marker,
		"iat": now.Unix(),
		"exp": now.Add(MaxAge).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

func (c *JWTCodec) Valid(value string, now time.Time) bool {
	if value == "" {
		return false
	}

	token, err := jwt.Parse(value, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.key, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return false
	}

	sub, err := token.Claims.GetSubject()
	return err == nil && sub == Marker
}

type Manager struct {
	codec  Codec
	secure bool
	now    func() time.Time
}

type Option func(*Manager)

// WithSecure marks the cookie Secure; set in production.
func WithSecure(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

// WithSigningKey switches to the signed JWT codec.
func WithSigningKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.codec = NewJWTCodec([]byte(key))
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{codec: MarkerCodec{}, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create sets the session cookie on w.
func (m *Manager) Create(w http.ResponseWriter) error {
	value, err := m.codec.Encode(m.now())
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(value, int(MaxAge/time.Second)))
	return nil
}

// Destroy expires the session cookie.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie("", -1))
}

// Valid reports whether credential grants an operator session.
func (m *Manager) Valid(credential string) bool {
	return m.codec.Valid(credential, m.now())
}

// Credential reads the cookie value from r, or "" when absent.
func (m *Manager) Credential(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
