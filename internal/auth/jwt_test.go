package auth

import (
	"testing"
	"time"
)

const (
	testKey    = "test-signing-key"
	testIssuer = "photodrop-test"
)

func TestIssueAndParse(t *testing.T) {
	token, exp, err := Issue("9998887776", RoleStudent, testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(exp) < 55*time.Minute {
		t.Fatalf("expiry too soon: %v", exp)
	}

	claims, err := Parse(token, testKey, testIssuer)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "9998887776" || claims.Role != RoleStudent {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	token, _, err := Issue("999", RoleStudent, testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(token, "other-key", testIssuer); err == nil {
		t.Fatal("token verified with wrong key")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, _, err := Issue("999", RoleStudent, "someone-else", testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(token, testKey, testIssuer); err == nil {
		t.Fatal("token verified with wrong issuer")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	token, _, err := Issue("999", RoleStudent, testIssuer, testKey, -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(token, testKey, testIssuer); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestAdminTokenHasEmptySubject(t *testing.T) {
	token, _, err := Issue("", RoleAdmin, testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := Parse(token, testKey, testIssuer)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Role != RoleAdmin || claims.Subject != "" {
		t.Fatalf("claims = %+v", claims)
	}
}
