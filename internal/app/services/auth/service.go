package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"realty/internal/app/dto"
	domainuser "realty/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrPasswordTooShort   = errors.New("auth: password must be at least 8 characters")
	ErrUserBlocked        = errors.New("auth: user blocked")
	ErrEmailNotVerified   = errors.New("auth: email not verified")
	ErrCodeMismatch       = errors.New("auth: verification code mismatch or expired")
	ErrRefreshRejected    = errors.New("auth: refresh token rejected")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer mints and verifies the JWT access/refresh pair.
type TokenIssuer interface {
	IssuePair(userID, email, role string) (TokenPair, error)
	ParseAccess(token string) (Claims, error)
	ParseRefresh(token string) (Claims, error)
}

type TokenPair struct {
	Access    string
	Refresh   string
	ExpiresAt time.Time
}

type Claims struct {
	UserID string
	Email  string
	Role   string
}

// RefreshStore is the allow-list of live refresh tokens; deleting an
// entry revokes the token. Backed by redis with the refresh TTL.
type RefreshStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// CodeStore keeps one-time verification codes keyed by email, expiring
// after the OTP TTL.
type CodeStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Lookup(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type Mailer interface {
	Send(to, subject, body string) error
}

type CodeGenerator interface {
	NewCode() (string, error)
}

type Service struct {
	Users      domainuser.Repository
	Passwords  PasswordHasher
	Tokens     TokenIssuer
	Refresh    RefreshStore
	Codes      CodeStore
	CodeGen    CodeGenerator
	Mail       Mailer
	RefreshTTL time.Duration
	OTPTTL     time.Duration
	Logger     *slog.Logger
}

type RegisterParams struct {
	Email      string
	Name       string
	Password   string
	WantToHost bool
}

// Register creates an unverified account and emails a one-time code. No
// tokens are issued until the code is confirmed.
func (s *Service) Register(ctx context.Context, params RegisterParams) (dto.UserProfile, error) {
	email := domainuser.NormalizeEmail(params.Email)
	if email == "" {
		return dto.UserProfile{}, domainuser.ErrEmailRequired
	}
	if utf8.RuneCountInString(params.Password) < 8 {
		return dto.UserProfile{}, ErrPasswordTooShort
	}
	hash, err := s.Passwords.Hash(params.Password)
	if err != nil {
		return dto.UserProfile{}, err
	}
	roles := []domainuser.Role{domainuser.RoleGuest}
	if params.WantToHost {
		roles = append(roles, domainuser.RoleHost)
	}
	account, err := domainuser.New(domainuser.CreateParams{
		ID:           domainuser.ID(uuid.NewString()),
		Email:        email,
		Name:         params.Name,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return dto.UserProfile{}, err
	}
	if err := s.Users.Save(ctx, account); err != nil {
		return dto.UserProfile{}, err
	}
	if err := s.sendVerificationCode(ctx, account); err != nil {
		// The account exists; the code can be re-requested.
		if s.Logger != nil {
			s.Logger.Warn("verification mail failed", "user_id", account.ID, "error", err)
		}
	}
	if s.Logger != nil {
		s.Logger.Info("user registered", "user_id", account.ID, "email", account.Email)
	}
	return dto.MapUserProfile(account), nil
}

// VerifyEmail confirms the emailed code and issues the first token pair.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) (*dto.AuthResponse, error) {
	email = domainuser.NormalizeEmail(email)
	account, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrCodeMismatch
		}
		return nil, err
	}
	stored, err := s.Codes.Lookup(ctx, email)
	if err != nil || stored == "" || stored != strings.TrimSpace(code) {
		return nil, ErrCodeMismatch
	}
	_ = s.Codes.Delete(ctx, email)

	if !account.Verified {
		account.MarkVerified(time.Now())
		if err := s.Users.Save(ctx, account); err != nil {
			return nil, err
		}
	}
	return s.issue(ctx, account)
}

// ResendCode issues a fresh OTP for an unverified account.
func (s *Service) ResendCode(ctx context.Context, email string) error {
	account, err := s.Users.ByEmail(ctx, domainuser.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			// Do not leak whether the address is registered.
			return nil
		}
		return err
	}
	if account.Verified {
		return nil
	}
	return s.sendVerificationCode(ctx, account)
}

func (s *Service) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	account, err := s.Users.ByEmail(ctx, domainuser.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if account.Blocked {
		return nil, ErrUserBlocked
	}
	if err := s.Passwords.Compare(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !account.Verified {
		return nil, ErrEmailNotVerified
	}
	if s.Logger != nil {
		s.Logger.Info("user authenticated", "user_id", account.ID)
	}
	return s.issue(ctx, account)
}

// RefreshPair rotates the token pair: the presented refresh token must be
// in the allow-list, and is consumed whether or not rotation succeeds.
func (s *Service) RefreshPair(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, ErrRefreshRejected
	}
	if _, err := s.Tokens.ParseRefresh(refreshToken); err != nil {
		return nil, ErrRefreshRejected
	}
	userID, err := s.Refresh.Lookup(ctx, refreshToken)
	if err != nil || userID == "" {
		return nil, ErrRefreshRejected
	}
	_ = s.Refresh.Delete(ctx, refreshToken)

	account, err := s.Users.ByID(ctx, domainuser.ID(userID))
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrRefreshRejected
		}
		return nil, err
	}
	if account.Blocked {
		return nil, ErrUserBlocked
	}
	return s.issue(ctx, account)
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}
	return s.Refresh.Delete(ctx, refreshToken)
}

// Authenticate resolves an access token into the caller's identity for
// the HTTP middleware.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*domainuser.User, error) {
	claims, err := s.Tokens.ParseAccess(accessToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	account, err := s.Users.ByID(ctx, domainuser.ID(claims.UserID))
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if account.Blocked {
		return nil, ErrUserBlocked
	}
	return account, nil
}

func (s *Service) issue(ctx context.Context, account *domainuser.User) (*dto.AuthResponse, error) {
	pair, err := s.Tokens.IssuePair(string(account.ID), account.Email, primaryRole(account))
	if err != nil {
		return nil, err
	}
	if err := s.Refresh.Save(ctx, pair.Refresh, string(account.ID), s.refreshTTL()); err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:         dto.MapUserProfile(account),
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		ExpiresAt:    pair.ExpiresAt,
	}, nil
}

func (s *Service) sendVerificationCode(ctx context.Context, account *domainuser.User) error {
	code, err := s.CodeGen.NewCode()
	if err != nil {
		return err
	}
	if err := s.Codes.Save(ctx, account.Email, code, s.otpTTL()); err != nil {
		return err
	}
	body := fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in %d minutes.\n", account.Name, code, int(s.otpTTL().Minutes()))
	return s.Mail.Send(account.Email, "Verify your email", body)
}

func (s *Service) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return 30 * 24 * time.Hour
}

func (s *Service) otpTTL() time.Duration {
	if s.OTPTTL > 0 {
		return s.OTPTTL
	}
	return 10 * time.Minute
}

func primaryRole(account *domainuser.User) string {
	switch {
	case account.HasRole(domainuser.RoleAdmin):
		return string(domainuser.RoleAdmin)
	case account.HasRole(domainuser.RoleHost):
		return string(domainuser.RoleHost)
	default:
		return string(domainuser.RoleGuest)
	}
}
