package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/api"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

type fakeAPI struct {
	signupOut *api.User
	signupErr error

	loginOut *api.Token
	loginErr error

	logoutErr   error
	logoutValue string

	validateOut *api.User
	validateErr error
}

func (f *fakeAPI) Signup(ctx context.Context, email, name, password string) (*api.User, error) {
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return f.signupOut, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.Token, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginOut, nil
}

func (f *fakeAPI) Logout(ctx context.Context, tokenValue string) error {
	f.logoutValue = tokenValue
	return f.logoutErr
}

func (f *fakeAPI) Validate(ctx context.Context, tokenValue string) (*api.User, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return f.validateOut, nil
}

func stubInput(t *testing.T, lines []string, password string) {
	t.Helper()

	oldText := getSimpleText
	oldPass := getPassword
	t.Cleanup(func() {
		getSimpleText = oldText
		getPassword = oldPass
	})

	i := 0
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		if i >= len(lines) {
			return "", io.EOF
		}
		line := lines[i]
		i++
		return line, nil
	}
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

func newTestApp(client API) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return NewApp(client, strings.NewReader(""), &out), &out
}

func TestRun_UnknownCommand(t *testing.T) {
	app, out := newTestApp(&fakeAPI{})
	err := app.Run(context.Background(), []string{"frobnicate"})
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(out.String(), "usage:") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
}

func TestSignup_PrintsEmail(t *testing.T) {
	stubInput(t, []string{"a@x.com", "Alice"}, "pw123")
	app, out := newTestApp(&fakeAPI{signupOut: &api.User{ID: "u1", Email: "a@x.com"}})

	if err := app.Run(context.Background(), []string{"signup"}); err != nil {
		t.Fatalf("signup error: %v", err)
	}
	if !strings.Contains(out.String(), "Registered: a@x.com") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestLogin_PrintsToken(t *testing.T) {
	stubInput(t, []string{"a@x.com"}, "pw123")
	expiry := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	app, out := newTestApp(&fakeAPI{loginOut: &api.Token{Token: "opaque", ExpiresAt: expiry}})

	if err := app.Run(context.Background(), []string{"login"}); err != nil {
		t.Fatalf("login error: %v", err)
	}
	if !strings.Contains(out.String(), "Token: opaque") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestLogin_AuthFailure(t *testing.T) {
	stubInput(t, []string{"a@x.com"}, "wrong")
	app, _ := newTestApp(&fakeAPI{loginErr: common.ErrInvalidCredentials})

	err := app.Run(context.Background(), []string{"login"})
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogout_UsesArgument(t *testing.T) {
	client := &fakeAPI{}
	app, out := newTestApp(client)

	if err := app.Run(context.Background(), []string{"logout", "opaque"}); err != nil {
		t.Fatalf("logout error: %v", err)
	}
	if client.logoutValue != "opaque" {
		t.Fatalf("expected token argument to be passed, got %q", client.logoutValue)
	}
	if !strings.Contains(out.String(), "Logged out.") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestValidate_PrintsOwner(t *testing.T) {
	app, out := newTestApp(&fakeAPI{validateOut: &api.User{ID: "u1", Email: "a@x.com"}})

	if err := app.Run(context.Background(), []string{"validate", "opaque"}); err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if !strings.Contains(out.String(), "Valid for: a@x.com") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestValidate_PromptsWhenNoArgument(t *testing.T) {
	stubInput(t, []string{"opaque"}, "")
	app, _ := newTestApp(&fakeAPI{validateOut: &api.User{Email: "a@x.com"}})

	if err := app.Run(context.Background(), []string{"validate"}); err != nil {
		t.Fatalf("validate error: %v", err)
	}
}
