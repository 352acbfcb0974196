// Package canceltoken issues and verifies the signed tokens embedded in
// cancellation links, so that anyone holding the link can cancel exactly
// one booking without logging in.
package canceltoken

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/hkdf"
)

// Namespace distinguishes cancellation tokens from any other value signed
// with the same application secret.
const Namespace = "bookings.cancel.v1"

const (
	keySize        = 32
	maxTokenLength = 512
)

var (
	// ErrEmptySecret returned by New when no secret is configured
	ErrEmptySecret = errors.New("canceltoken: secret is empty")

	// ErrInvalidBookingID returned by Encode for non-positive ids
	ErrInvalidBookingID = errors.New("canceltoken: booking id must be positive")
)

type claims struct {
	Purpose string `json:"pur"`
	jwt.StandardClaims
}

// Codec encodes booking ids into HS256-signed tokens. Tokens carry no expiry;
// callers decide whether the referenced booking can still be cancelled.
type Codec struct {
	key       []byte
	namespace string
	parser    *jwt.Parser
}

// New derives a namespace-bound signing key from secret.
func New(secret string) (*Codec, error) {
	return NewWithNamespace(secret, Namespace)
}

// NewWithNamespace is New with an explicit purpose namespace.
func NewWithNamespace(secret, namespace string) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(namespace)), key); err != nil {
		return nil, fmt.Errorf("canceltoken: derive key: %w", err)
	}

	return &Codec{
		key:       key,
		namespace: namespace,
		parser:    &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
	}, nil
}

// Encode returns a token for bookingID.
func (c *Codec) Encode(bookingID int64) (string, error) {
	if bookingID <= 0 {
		return "", ErrInvalidBookingID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Purpose: c.namespace,
		StandardClaims: jwt.StandardClaims{
			Subject: strconv.FormatInt(bookingID, 10),
		},
	})

	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("canceltoken: sign: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns the embedded booking id.
// Any failure (bad signature, foreign namespace, malformed payload) yields
// (0, false) and is indistinguishable from an unknown booking.
func (c *Codec) Decode(token string) (int64, bool) {
	if token == "" || len(token) > maxTokenLength {
		return 0, false
	}

	var parsed claims
	t, err := c.parser.ParseWithClaims(token, &parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.key, nil
	})
	if err != nil || !t.Valid {
		return 0, false
	}

	if parsed.Purpose != c.namespace {
		return 0, false
	}

	id, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
