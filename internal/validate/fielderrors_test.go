package validate

import "testing"

func TestFieldErrorsOrNil(t *testing.T) {
	fe := FieldErrors{}
	if fe.OrNil() != nil {
		t.Fatal("empty collection should be nil error")
	}
	fe.Add("email", "email is required")
	if fe.OrNil() == nil {
		t.Fatal("non-empty collection should be an error")
	}
}

func TestFieldErrorsFirstMessageWins(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("name", "name is required")
	fe.Add("name", "overwritten")
	if fe["name"] != "name is required" {
		t.Fatalf("expected first message kept, got %q", fe["name"])
	}
}

func TestFieldErrorsErrorString(t *testing.T) {
	fe := FieldErrors{"name": "x", "email": "y"}
	if got := fe.Error(); got != "validation failed: email, name" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestEmailOK(t *testing.T) {
	cases := map[string]bool{
		"georgie@thegrowthaccelerators.co.uk": true,
		"a@b.co":          true,
		"":                false,
		"not-an-email":    false,
		"spaces @bad.com": false,
		"Name <a@b.co>":   false,
	}
	for addr, want := range cases {
		if got := EmailOK(addr); got != want {
			t.Errorf("EmailOK(%q) = %v, want %v", addr, got, want)
		}
	}
}
