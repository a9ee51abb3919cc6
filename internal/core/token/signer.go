// Package token implements the cryptographic primitives of the identity core:
// bcrypt secret hashing and HS256 signed bearer tokens. It knows nothing about
// roles or storage; role authorization is always re-resolved from the user
// store at verification time, never trusted from a token payload.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token signature invalid")
var ErrTokenMalformed = errors.New("token malformed")

// HashSecret derives a one-way salted digest from an arbitrary plaintext.
func HashSecret(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifySecret reports whether plain matches a digest produced by HashSecret.
// It never fails outward; any mismatch or malformed digest yields false.
func VerifySecret(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// Claims is the signed token payload: subject identity plus issue/expiry
// times. Deliberately role-free.
type Claims struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Signer issues and verifies compact bearer tokens bound to a process-wide
// secret and a fixed TTL.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Sign serializes and signs a claim for the given subject. The expiry is
// always issued-at plus the configured TTL.
func (s *Signer) Sign(id int64, name string) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:   id,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims. Failure modes
// are distinguished for callers that need them (the HTTP guard collapses
// them all to a single unauthenticated signal):
//
//	ErrTokenExpired:   signature fine, now past expires_at
//	ErrTokenInvalid:   signature mismatch (tampering, wrong secret, wrong alg)
//	ErrTokenMalformed: input is not a parseable token
func (s *Signer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Decode parses a token WITHOUT verifying its signature or expiry. The result
// is untrusted: it must only feed read paths with no security consequence
// (e.g. echoing the caller's own profile). Anything that gates access goes
// through Verify.
func (s *Signer) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
