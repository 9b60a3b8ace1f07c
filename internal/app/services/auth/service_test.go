package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	domainuser "realty/internal/domain/user"
	"realty/internal/infra/storage/memory"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return ErrInvalidCredentials
	}
	return nil
}

// sequenceIssuer mints predictable, unique token strings so rotation
// can be asserted without signing real JWTs.
type sequenceIssuer struct {
	seq int
}

func (i *sequenceIssuer) IssuePair(userID, email, role string) (TokenPair, error) {
	i.seq++
	return TokenPair{
		Access:    fmt.Sprintf("access:%s:%d", userID, i.seq),
		Refresh:   fmt.Sprintf("refresh:%s:%d", userID, i.seq),
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

func (i *sequenceIssuer) ParseAccess(token string) (Claims, error) {
	return i.parse(token, "access:")
}

func (i *sequenceIssuer) ParseRefresh(token string) (Claims, error) {
	return i.parse(token, "refresh:")
}

func (i *sequenceIssuer) parse(token, prefix string) (Claims, error) {
	rest, ok := strings.CutPrefix(token, prefix)
	if !ok {
		return Claims{}, ErrInvalidCredentials
	}
	userID, _, ok := strings.Cut(rest, ":")
	if !ok {
		return Claims{}, ErrInvalidCredentials
	}
	return Claims{UserID: userID}, nil
}

type captureMailer struct {
	to   []string
	body []string
}

func (m *captureMailer) Send(to, subject, body string) error {
	m.to = append(m.to, to)
	m.body = append(m.body, body)
	return nil
}

type fixedCodes struct {
	code string
}

func (g fixedCodes) NewCode() (string, error) { return g.code, nil }

type authFixture struct {
	service *Service
	users   *memory.UserRepository
	mailer  *captureMailer
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	users := memory.NewUserRepository()
	mailer := &captureMailer{}
	service := &Service{
		Users:      users,
		Passwords:  plainHasher{},
		Tokens:     &sequenceIssuer{},
		Refresh:    memory.NewKVStore(),
		Codes:      memory.NewKVStore(),
		CodeGen:    fixedCodes{code: "123456"},
		Mail:       mailer,
		RefreshTTL: time.Hour,
		OTPTTL:     10 * time.Minute,
	}
	return authFixture{service: service, users: users, mailer: mailer}
}

func (f authFixture) register(t *testing.T, email string) {
	t.Helper()
	_, err := f.service.Register(context.Background(), RegisterParams{
		Email:    email,
		Name:     "Sam",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestRegisterSendsVerificationCode(t *testing.T) {
	f := newAuthFixture(t)

	profile, err := f.service.Register(context.Background(), RegisterParams{
		Email:      "Sam@Example.COM",
		Name:       "Sam",
		Password:   "correct horse",
		WantToHost: true,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if profile.Email != "sam@example.com" {
		t.Fatalf("email not normalized: %q", profile.Email)
	}
	if profile.Verified {
		t.Fatal("new accounts must start unverified")
	}

	if len(f.mailer.to) != 1 || f.mailer.to[0] != "sam@example.com" {
		t.Fatalf("expected one mail to sam@example.com, got %v", f.mailer.to)
	}
	if !strings.Contains(f.mailer.body[0], "123456") {
		t.Fatalf("mail body missing code: %q", f.mailer.body[0])
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(context.Background(), RegisterParams{
		Email:    "sam@example.com",
		Password: "short",
	})
	if err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestVerifyEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "sam@example.com")

	if _, err := f.service.VerifyEmail(context.Background(), "sam@example.com", "999999"); err != ErrCodeMismatch {
		t.Fatalf("wrong code: expected ErrCodeMismatch, got %v", err)
	}

	resp, err := f.service.VerifyEmail(context.Background(), "sam@example.com", "123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !resp.User.Verified {
		t.Fatal("account should be verified")
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", resp)
	}

	// The code is consumed on success.
	if _, err := f.service.VerifyEmail(context.Background(), "sam@example.com", "123456"); err != ErrCodeMismatch {
		t.Fatalf("reused code: expected ErrCodeMismatch, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "sam@example.com")

	if _, err := f.service.Login(context.Background(), "sam@example.com", "correct horse"); err != ErrEmailNotVerified {
		t.Fatalf("unverified login: expected ErrEmailNotVerified, got %v", err)
	}

	if _, err := f.service.VerifyEmail(context.Background(), "sam@example.com", "123456"); err != nil {
		t.Fatalf("verify: %v", err)
	}

	if _, err := f.service.Login(context.Background(), "sam@example.com", "wrong password"); err != ErrInvalidCredentials {
		t.Fatalf("bad password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.service.Login(context.Background(), "nobody@example.com", "correct horse"); err != ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}

	resp, err := f.service.Login(context.Background(), "sam@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", resp)
	}
}

func TestLoginRejectsBlockedUser(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "sam@example.com")
	if _, err := f.service.VerifyEmail(context.Background(), "sam@example.com", "123456"); err != nil {
		t.Fatalf("verify: %v", err)
	}

	account, err := f.users.ByEmail(context.Background(), "sam@example.com")
	if err != nil {
		t.Fatalf("load account: %v", err)
	}
	account.SetBlocked(true, time.Now())
	if err := f.users.Save(context.Background(), account); err != nil {
		t.Fatalf("save account: %v", err)
	}

	if _, err := f.service.Login(context.Background(), "sam@example.com", "correct horse"); err != ErrUserBlocked {
		t.Fatalf("expected ErrUserBlocked, got %v", err)
	}
}

func TestRefreshPairRotates(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "sam@example.com")
	first, err := f.service.VerifyEmail(context.Background(), "sam@example.com", "123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	second, err := f.service.RefreshPair(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("refresh must rotate the token")
	}

	// The presented token is consumed even though rotation succeeded.
	if _, err := f.service.RefreshPair(context.Background(), first.RefreshToken); err != ErrRefreshRejected {
		t.Fatalf("consumed token: expected ErrRefreshRejected, got %v", err)
	}
	if _, err := f.service.RefreshPair(context.Background(), "refresh:forged:9"); err != ErrRefreshRejected {
		t.Fatalf("unknown token: expected ErrRefreshRejected, got %v", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "sam@example.com")
	resp, err := f.service.VerifyEmail(context.Background(), "sam@example.com", "123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if err := f.service.Logout(context.Background(), resp.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := f.service.RefreshPair(context.Background(), resp.RefreshToken); err != ErrRefreshRejected {
		t.Fatalf("expected ErrRefreshRejected after logout, got %v", err)
	}
}

func TestAuthenticateResolvesUser(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "sam@example.com")
	resp, err := f.service.VerifyEmail(context.Background(), "sam@example.com", "123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	account, err := f.service.Authenticate(context.Background(), resp.AccessToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if account.Email != "sam@example.com" || !account.HasRole(domainuser.RoleGuest) {
		t.Fatalf("unexpected principal: %+v", account)
	}

	if _, err := f.service.Authenticate(context.Background(), "garbage"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
