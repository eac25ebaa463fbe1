package tokens

import (
	"strings"
	"testing"
	"time"
)

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec("secret", time.Hour, 24*time.Hour)

	for _, kind := range []Kind{KindAccess, KindRefresh} {
		raw, err := c.Issue("64f1c0ffee0000000000abcd", kind)
		if err != nil {
			t.Fatalf("issue %s: %v", kind, err)
		}

		claims, ok := c.Verify(raw)
		if !ok {
			t.Fatalf("verify %s: expected valid token", kind)
		}
		if claims.Subject != "64f1c0ffee0000000000abcd" {
			t.Fatalf("subject mismatch: %q", claims.Subject)
		}
		if claims.Kind != kind {
			t.Fatalf("kind mismatch: got %q want %q", claims.Kind, kind)
		}
	}
}

func TestCodec_IssuePair(t *testing.T) {
	c := NewCodec("secret", time.Hour, 24*time.Hour)

	access, refresh, err := c.IssuePair("abc123")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	ac, ok := c.Verify(access)
	if !ok || ac.Kind != KindAccess {
		t.Fatalf("access token invalid: ok=%v claims=%+v", ok, ac)
	}
	rc, ok := c.Verify(refresh)
	if !ok || rc.Kind != KindRefresh {
		t.Fatalf("refresh token invalid: ok=%v claims=%+v", ok, rc)
	}
	if !rc.ExpiresAt.After(ac.ExpiresAt.Time) {
		t.Fatalf("refresh should outlive access: %v vs %v", rc.ExpiresAt, ac.ExpiresAt)
	}
}

func TestCodec_Expired(t *testing.T) {
	c := NewCodec("secret", time.Hour, 24*time.Hour)

	raw, err := c.IssueWithTTL("abc123", KindAccess, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, ok := c.Verify(raw); ok {
		t.Fatalf("expected expired token to verify as absent")
	}
}

func TestCodec_ForeignSecret(t *testing.T) {
	issuer := NewCodec("secret-a", time.Hour, 24*time.Hour)
	verifier := NewCodec("secret-b", time.Hour, 24*time.Hour)

	raw, err := issuer.Issue("abc123", KindAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, ok := verifier.Verify(raw); ok {
		t.Fatalf("token signed with a different secret must not verify")
	}
}

func TestCodec_Corrupted(t *testing.T) {
	c := NewCodec("secret", time.Hour, 24*time.Hour)

	raw, err := c.Issue("abc123", KindAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	parts[1] = "x" + parts[1]
	if _, ok := c.Verify(strings.Join(parts, ".")); ok {
		t.Fatalf("corrupted payload must not verify")
	}

	if _, ok := c.Verify("not-a-token"); ok {
		t.Fatalf("garbage must not verify")
	}
	if _, ok := c.Verify(""); ok {
		t.Fatalf("empty string must not verify")
	}
}

func TestCodec_DefaultTTLs(t *testing.T) {
	c := NewCodec("secret", 0, 0)
	if c.TTL(KindAccess) != 30*time.Minute {
		t.Fatalf("unexpected access TTL: %v", c.TTL(KindAccess))
	}
	if c.TTL(KindRefresh) != 7*24*time.Hour {
		t.Fatalf("unexpected refresh TTL: %v", c.TTL(KindRefresh))
	}
}
