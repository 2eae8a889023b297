package server

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	iss := NewTokenIssuer("s3cret")
	iss.now = func() time.Time { return t0 }

	tok, err := iss.Issue("alice")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := iss.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Name != "alice" {
		t.Fatalf("name = %q", claims.Name)
	}

	if _, err := NewTokenIssuer("other").Parse(tok); err == nil {
		t.Fatalf("token accepted with the wrong secret")
	}

	iss.now = func() time.Time { return t0.Add(tokenTTL + time.Minute) }
	if _, err := iss.Parse(tok); err == nil {
		t.Fatalf("expired token accepted")
	}
}

func TestSanitizeName(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"  bob  ", "bob"},
		{"", ""},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnopqrst"},
		{"纸片大作战纸片大作战纸片大作战纸片大作战纸片", "纸片大作战纸片大作战纸片大作战纸片大作战"},
	} {
		if got := sanitizeName(tc.in); got != tc.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
