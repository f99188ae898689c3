package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gammageek/wishlist/internal/models"
)

func TestPasswordAuthenticator(t *testing.T) {
	a := NewPasswordAuthenticator()

	tests := []struct {
		name       string
		credential Credential
		want       models.Identity
		wantErr    bool
	}{
		{
			name:       "any password is accepted",
			credential: Credential{Email: "alice@x.com", Password: "x"},
			want:       models.Identity{Email: "alice@x.com", FullName: "alice", AuthMethod: "email"},
		},
		{
			name:       "no at sign uses whole email",
			credential: Credential{Email: "bob", Password: "secret"},
			want:       models.Identity{Email: "bob", FullName: "bob", AuthMethod: "email"},
		},
		{
			name:       "empty password",
			credential: Credential{Email: "alice@x.com"},
			wantErr:    true,
		},
		{
			name:       "empty email",
			credential: Credential{Password: "secret"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Authenticate(context.Background(), tt.credential)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("expected ErrInvalidCredentials, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Authenticate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func googleToken(t *testing.T, claims GoogleClaims) string {
	t.Helper()
	// Any key works: the signature is never checked.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("google-side-key"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func TestGoogleAuthenticator(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes payload", func(t *testing.T) {
		a := NewGoogleAuthenticator("")
		token := googleToken(t, GoogleClaims{Email: "g@gmail.com", Name: "Google User", Picture: "https://pic"})

		got, err := a.Authenticate(ctx, Credential{Token: token})
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		want := models.Identity{Email: "g@gmail.com", FullName: "Google User", AuthMethod: "google", Picture: "https://pic"}
		if got != want {
			t.Errorf("Authenticate() = %+v, want %+v", got, want)
		}
	})

	t.Run("falls back to local part for name", func(t *testing.T) {
		a := NewGoogleAuthenticator("")
		got, err := a.Authenticate(ctx, Credential{Token: googleToken(t, GoogleClaims{Email: "sam@gmail.com"})})
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.FullName != "sam" {
			t.Errorf("FullName = %q, want sam", got.FullName)
		}
	})

	t.Run("checks audience when configured", func(t *testing.T) {
		a := NewGoogleAuthenticator("client-1")
		ok := googleToken(t, GoogleClaims{Email: "g@gmail.com", RegisteredClaims: jwt.RegisteredClaims{Audience: jwt.ClaimStrings{"client-1"}}})
		bad := googleToken(t, GoogleClaims{Email: "g@gmail.com", RegisteredClaims: jwt.RegisteredClaims{Audience: jwt.ClaimStrings{"other"}}})

		if _, err := a.Authenticate(ctx, Credential{Token: ok}); err != nil {
			t.Errorf("expected matching audience to pass, got %v", err)
		}
		if _, err := a.Authenticate(ctx, Credential{Token: bad}); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects unusable tokens", func(t *testing.T) {
		a := NewGoogleAuthenticator("")
		for _, token := range []string{"", "not-a-jwt", googleToken(t, GoogleClaims{Name: "No Email"})} {
			if _, err := a.Authenticate(ctx, Credential{Token: token}); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("token %q: expected ErrInvalidCredentials, got %v", token, err)
			}
		}
	})
}

func TestTokenManager(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	identity := models.Identity{Email: "alice@x.com", FullName: "alice", AuthMethod: "email"}

	token, err := m.Generate("session-1", identity)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.SessionID() != "session-1" {
		t.Errorf("SessionID = %q, want session-1", claims.SessionID())
	}
	if claims.Identity() != identity {
		t.Errorf("Identity = %+v, want %+v", claims.Identity(), identity)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewTokenManager("test-secret", -time.Minute)
		token, err := expired.Generate("session-2", identity)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.Validate("garbage"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
