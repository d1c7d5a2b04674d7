package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const secret = "test-access-secret-0123456789"

func TestSignAndVerify(t *testing.T) {
	now := time.Now()
	tok, err := signToken(secret, 42, "renter", "tok-1", now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := verifyToken(tok, secret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SubjectInt() != 42 || claims.ID != "tok-1" || claims.Role != "renter" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	now := time.Now()

	expired, _ := signToken(secret, 1, "renter", "tok", now.Add(-2*time.Hour), now.Add(-time.Hour))
	if _, err := verifyToken(expired, secret); err == nil {
		t.Fatal("expected expired token to fail")
	}

	valid, _ := signToken(secret, 1, "renter", "tok", now, now.Add(time.Hour))
	if _, err := verifyToken(valid, "another-secret-0123456789"); err == nil {
		t.Fatal("expected wrong secret to fail")
	}
	if _, err := verifyToken(valid+"x", secret); err == nil {
		t.Fatal("expected tampered token to fail")
	}

	noJTI, _ := signToken(secret, 1, "renter", "", now, now.Add(time.Hour))
	if _, err := verifyToken(noJTI, secret); err == nil {
		t.Fatal("expected token without jti to fail")
	}

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "tok",
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	s, _ := hs512.SignedString([]byte(secret))
	if _, err := verifyToken(s, secret); err == nil {
		t.Fatal("expected unexpected signing method to fail")
	}

	if _, err := signToken("", 1, "renter", "tok", now, now.Add(time.Hour)); err == nil {
		t.Fatal("expected empty secret to fail")
	}
}
