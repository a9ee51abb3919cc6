package token

import (
	"errors"
	"testing"
	"time"
)

func TestHashSecret_RoundTrip(t *testing.T) {
	digest, err := HashSecret("s3cret")
	if err != nil {
		t.Fatalf("HashSecret returned error: %v", err)
	}
	if digest == "s3cret" {
		t.Fatalf("digest must not equal plaintext")
	}
	if !VerifySecret("s3cret", digest) {
		t.Fatalf("expected digest to verify against original plaintext")
	}
	if VerifySecret("other", digest) {
		t.Fatalf("expected different plaintext to fail verification")
	}
}

func TestVerifySecret_MalformedDigest(t *testing.T) {
	if VerifySecret("anything", "not-a-bcrypt-digest") {
		t.Fatalf("expected false for malformed digest")
	}
}

func TestSigner_SignVerify(t *testing.T) {
	s := NewSigner("secret", time.Hour)

	tkn, err := s.Sign(42, "alice")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	claims, err := s.Verify(tkn)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.ID != 42 || claims.Name != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatalf("expected issued/expiry timestamps")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected expiry = issued + ttl, got delta %v", got)
	}
}

func TestSigner_Verify_Expired(t *testing.T) {
	s := NewSigner("secret", time.Millisecond)

	tkn, err := s.Sign(1, "bob")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := s.Verify(tkn); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSigner_Verify_WrongSecret(t *testing.T) {
	s1 := NewSigner("secret-one", time.Hour)
	s2 := NewSigner("secret-two", time.Hour)

	tkn, err := s1.Sign(1, "carol")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if _, err := s2.Verify(tkn); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestSigner_Verify_Malformed(t *testing.T) {
	s := NewSigner("secret", time.Hour)

	if _, err := s.Verify("garbage"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestSigner_Decode_SkipsVerification(t *testing.T) {
	signing := NewSigner("real-secret", time.Hour)
	other := NewSigner("different-secret", time.Hour)

	tkn, err := signing.Sign(7, "dave")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	// Decode does not check the signature, so a signer holding a different
	// secret can still read the payload.
	claims, err := other.Decode(tkn)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if claims.ID != 7 || claims.Name != "dave" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := other.Decode("garbage"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for unparseable input, got %v", err)
	}
}

func TestNewSigner_DefaultTTL(t *testing.T) {
	s := NewSigner("secret", 0)
	if s.TTL() != 24*time.Hour {
		t.Fatalf("expected default ttl 24h, got %v", s.TTL())
	}
}
