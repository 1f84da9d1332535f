package ids

import (
	"errors"
	"testing"

	"github.com/geocoder89/mesto/internal/domain"
)

func TestNew_IsValidAndUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		id := New()
		if !Valid(id) {
			t.Fatalf("generated invalid id %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "lower hex", in: "5f8f8c44b54764421b7156c3", want: true},
		{name: "upper hex", in: "5F8F8C44B54764421B7156C3", want: true},
		{name: "too short", in: "5f8f8c44b54764421b7156c", want: false},
		{name: "too long", in: "5f8f8c44b54764421b7156c3a", want: false},
		{name: "non hex", in: "5f8f8c44b54764421b7156cz", want: false},
		{name: "empty", in: "", want: false},
		{name: "uuid", in: "e42b6ed3-0af3-49f0-9dcd-37aa7ed8c980", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.in); got != tt.want {
				t.Fatalf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("5F8F8C44B54764421B7156C3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "5f8f8c44b54764421b7156c3" {
		t.Fatalf("got %q", got)
	}

	_, err = Normalize("not-an-id")
	if !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
