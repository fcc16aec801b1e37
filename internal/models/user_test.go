package models

import "testing"

func TestSetPasswordRoundTrip(t *testing.T) {
	u := &User{}
	if err := u.SetPassword("hunter22"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "hunter22" {
		t.Fatalf("expected a hash, got %q", u.PasswordHash)
	}

	if err := u.CheckPassword("hunter22"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := u.CheckPassword("wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}
