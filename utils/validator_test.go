package utils

import "testing"

func TestValidateHandle(t *testing.T) {
	valid := []string{"anna", "a.b-c_d", "user123", "abc"}
	for _, h := range valid {
		if !ValidateHandle(h) {
			t.Errorf("expected %q to be valid", h)
		}
	}

	invalid := []string{"", "ab", "has space", "way@off", "日本語ハンドル"}
	for _, h := range invalid {
		if ValidateHandle(h) {
			t.Errorf("expected %q to be invalid", h)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("anna@example.com") {
		t.Error("expected valid email")
	}
	if ValidateEmail("not-an-email") {
		t.Error("expected invalid email")
	}
}
