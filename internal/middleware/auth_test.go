package middleware

import (
	"context"
	"testing"

	"github.com/gammageek/wishlist/internal/models"
	"github.com/gammageek/wishlist/internal/session"
)

func TestGetSession(t *testing.T) {
	ctx := context.Background()
	if GetSession(ctx) != nil {
		t.Error("expected no session in empty context")
	}
	if got := GetEmail(ctx); got != "" {
		t.Errorf("GetEmail on empty context = %q, want empty", got)
	}

	sess := &session.Session{
		ID:       "s1",
		Identity: models.Identity{Email: "alice@x.com", AuthMethod: models.AuthMethodEmail},
	}
	ctx = WithSession(ctx, sess)

	if GetSession(ctx) != sess {
		t.Error("expected the attached session")
	}
	if got := GetEmail(ctx); got != "alice@x.com" {
		t.Errorf("GetEmail = %q, want alice@x.com", got)
	}
}
