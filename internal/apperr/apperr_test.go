package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindRequest, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
		{Kind(99), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Status(); got != tt.want {
				t.Fatalf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFrom(t *testing.T) {
	t.Run("classified passes through wrapping", func(t *testing.T) {
		orig := Forbidden("nope")
		wrapped := fmt.Errorf("handler: %w", orig)

		got := From(wrapped)
		if got != orig {
			t.Fatalf("expected original classified error, got %v", got)
		}
		if got.Status() != http.StatusForbidden || got.PublicMessage() != "nope" {
			t.Fatalf("unexpected %d %q", got.Status(), got.PublicMessage())
		}
	})

	t.Run("unclassified becomes internal without leaking detail", func(t *testing.T) {
		cause := errors.New("pq: password authentication failed for user mesto")

		got := From(cause)
		if got.Kind != KindInternal || got.Status() != http.StatusInternalServerError {
			t.Fatalf("unexpected kind %s", got.Kind)
		}
		if got.PublicMessage() != InternalMessage {
			t.Fatalf("public message = %q", got.PublicMessage())
		}
		if !errors.Is(got, cause) {
			t.Fatal("cause must stay reachable for logging")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if From(nil) != nil {
			t.Fatal("expected nil")
		}
	})
}

func TestPublicMessage_InternalNeverEchoes(t *testing.T) {
	e := New(KindInternal, "db exploded at 10.0.0.3")
	if e.PublicMessage() != InternalMessage {
		t.Fatalf("got %q", e.PublicMessage())
	}

	if New(KindNotFound, "").PublicMessage() != InternalMessage {
		t.Fatal("empty message must fall back")
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Wrap(KindConflict, "taken", errors.New("23505")))

	if !Is(err, KindConflict) {
		t.Fatal("expected conflict")
	}
	if Is(err, KindNotFound) {
		t.Fatal("unexpected not found")
	}
	if Is(errors.New("plain"), KindInternal) {
		t.Fatal("plain errors are not classified")
	}
}
