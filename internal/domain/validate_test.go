package domain_test

import (
	"errors"
	"testing"

	"github.com/geocoder89/mesto/internal/domain"
	"github.com/geocoder89/mesto/internal/domain/card"
	"github.com/geocoder89/mesto/internal/domain/user"
)

func TestIsHTTPURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://x.test/e.png", true},
		{"http://www.example.com/path?q=1#frag", true},
		{"https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png", true},
		{"ftp://example.com/file", false},
		{"example.com", false},
		{"https://exa mple.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := domain.IsHTTPURL(tt.in); got != tt.want {
			t.Fatalf("IsHTTPURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate_CardParams(t *testing.T) {
	ok := card.CreateParams{Name: "Eiffel", Link: "https://x.test/e.png", Owner: "5f8f8c44b54764421b7156c3"}
	if err := domain.Validate(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := ok
	bad.Name = "E"
	if err := domain.Validate(bad); !errors.Is(err, domain.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}

	bad = ok
	bad.Link = "not a link"
	if err := domain.Validate(bad); !errors.Is(err, domain.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestValidate_UserParams(t *testing.T) {
	p := user.CreateParams{Email: "a@a.com", PasswordHash: "hash"}.WithDefaults()
	if err := domain.Validate(p); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	short := "x"
	if err := domain.Validate(user.UpdateParams{About: &short}); !errors.Is(err, domain.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}

	if err := domain.Validate(user.UpdateParams{}); err != nil {
		t.Fatalf("empty update should validate: %v", err)
	}
}
