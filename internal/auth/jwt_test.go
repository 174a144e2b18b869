package auth

import "testing"

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	uid, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if uid != 42 {
		t.Fatalf("expected user 42, got %d", uid)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseToken([]byte("other-secret"), token); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken(testSecret, "not.a.token"); err == nil {
		t.Fatal("garbage token must not parse")
	}
}
