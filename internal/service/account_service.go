package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/store"
	"github.com/haatos/simple-shop/internal/util"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

type AccountWriter interface {
	CreateAccount(context.Context, string, string, string, access.Role) (*store.Account, error)
	UpdateAccountProfile(context.Context, int64, string, string) error
	UpdateAccountRole(context.Context, int64, access.Role) error
	UpdateAccountBanned(context.Context, int64, bool) error
}

type AccountReader interface {
	ReadAccountByID(context.Context, int64) (*store.Account, error)
	ReadAccountByEmail(context.Context, string) (*store.Account, error)
	ListAccounts(context.Context) ([]*store.Account, error)
}

type AuthSessionWriter interface {
	CreateAuthSession(context.Context, string, int64, *time.Time) (*store.AuthSession, error)
	ReadAuthSession(context.Context, string) (*store.AuthSession, error)
	DeleteAuthSession(context.Context, string) error
	DeleteAuthSessionsByAccountID(context.Context, int64) error
	DeleteExpiredAuthSessions(context.Context, time.Time) (int64, error)
}

type AccountStore interface {
	AccountWriter
	AccountReader
	AuthSessionWriter
}

type RegisterParams struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginParams struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileParams struct {
	Name      string `json:"name"       validate:"required,max=100"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

type AccountService struct {
	accountStore    AccountStore
	superAdminEmail string
	adminKey        string
	sessionLifetime time.Duration
}

// NewAccountService returns an AccountService. superAdminEmail names the one
// identity resolved as super admin, adminKey is the junior admin claim secret
// (empty disables claiming) and sessionLifetime bounds logins (zero means
// until logout).
func NewAccountService(
	s AccountStore,
	superAdminEmail, adminKey string,
	sessionLifetime time.Duration,
) *AccountService {
	return &AccountService{
		accountStore:    s,
		superAdminEmail: access.NormalizeEmail(superAdminEmail),
		adminKey:        adminKey,
		sessionLifetime: sessionLifetime,
	}
}

// SubjectOf builds the gate subject for an account whose role has already
// been resolved. A nil account is anonymous.
func SubjectOf(a *store.Account) access.Subject {
	if a == nil {
		return access.Anonymous()
	}
	return access.Subject{Authenticated: true, Role: a.RoleID, Banned: a.Banned}
}

func (s *AccountService) resolve(a *store.Account) *store.Account {
	persisted := a.RoleID
	a.RoleID = access.ResolveRole(a.Email, s.superAdminEmail, &persisted)
	return a
}

func (s *AccountService) GetAccountByID(ctx context.Context, accountID int64) (*store.Account, error) {
	a, err := s.accountStore.ReadAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.resolve(a), nil
}

func (s *AccountService) Register(ctx context.Context, p RegisterParams) (*store.Account, error) {
	p.Email = access.NormalizeEmail(p.Email)
	p.Name = strings.TrimSpace(p.Name)
	if err := validateStruct(p); err != nil {
		return nil, err
	}

	_, err := s.accountStore.ReadAccountByEmail(ctx, p.Email)
	if err == nil {
		return nil, NewValidationError("email", "already registered")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a, err := s.accountStore.CreateAccount(ctx, p.Email, p.Name, string(hash), access.RegularUser)
	if err != nil {
		return nil, err
	}
	return s.resolve(a), nil
}

// Authenticate checks credentials and walks a session through the login
// transitions. A banned account ends in the banned state and every session it
// still holds is removed.
func (s *AccountService) Authenticate(ctx context.Context, p LoginParams) (*store.Account, error) {
	p.Email = access.NormalizeEmail(p.Email)
	if err := validateStruct(p); err != nil {
		return nil, err
	}

	session := access.Session{}
	if _, err := session.Transition(access.Submit, false); err != nil {
		return nil, err
	}

	a, err := s.accountStore.ReadAccountByEmail(ctx, p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_, _ = session.Transition(access.Fail, false)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(p.Password)); err != nil {
		_, _ = session.Transition(access.Fail, false)
		return nil, ErrInvalidCredentials
	}

	signOut, err := session.Transition(access.Succeed, a.Banned)
	if err != nil {
		return nil, err
	}
	if signOut {
		if err := s.accountStore.DeleteAuthSessionsByAccountID(ctx, a.AccountID); err != nil {
			return nil, err
		}
		return nil, ErrAccountBanned
	}
	return s.resolve(a), nil
}

func (s *AccountService) CreateAuthSession(
	ctx context.Context,
	accountID int64,
) (*store.AuthSession, error) {
	var expires *time.Time
	if s.sessionLifetime > 0 {
		expires = util.AsPtr(time.Now().UTC().Add(s.sessionLifetime))
	}
	return s.accountStore.CreateAuthSession(
		ctx,
		generateRandomSessionID(),
		accountID,
		expires,
	)
}

func generateRandomSessionID() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// GetAccountBySessionID returns the current account record behind a session.
// Role and ban status always come from the store, never from the session.
func (s *AccountService) GetAccountBySessionID(
	ctx context.Context,
	sessionID string,
) (*store.Account, error) {
	as, err := s.accountStore.ReadAuthSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if as.Expired(time.Now().UTC()) {
		if err := s.accountStore.DeleteAuthSession(ctx, sessionID); err != nil {
			log.Printf("err deleting expired session: %+v\n", err)
		}
		return nil, ErrSessionExpired
	}
	a, err := s.accountStore.ReadAccountByID(ctx, as.AuthSessionAccountID)
	if err != nil {
		return nil, err
	}
	return s.resolve(a), nil
}

func (s *AccountService) Logout(ctx context.Context, sessionID string) error {
	return s.accountStore.DeleteAuthSession(ctx, sessionID)
}

// SignOut removes every session of the account.
func (s *AccountService) SignOut(ctx context.Context, accountID int64) error {
	return s.accountStore.DeleteAuthSessionsByAccountID(ctx, accountID)
}

func (s *AccountService) UpdateProfile(
	ctx context.Context,
	actor *store.Account,
	p ProfileParams,
) (*store.Account, error) {
	if err := access.Authorize(SubjectOf(actor), access.UpdateProfile); err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(p.Name)
	p.AvatarURL = strings.TrimSpace(p.AvatarURL)
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	if err := s.accountStore.UpdateAccountProfile(ctx, actor.AccountID, p.Name, p.AvatarURL); err != nil {
		return nil, err
	}
	return s.GetAccountByID(ctx, actor.AccountID)
}

// ClaimJuniorAdmin promotes a regular user who presents the configured admin
// key.
func (s *AccountService) ClaimJuniorAdmin(
	ctx context.Context,
	actor *store.Account,
	key string,
) (*store.Account, error) {
	if err := access.Authorize(SubjectOf(actor), access.ClaimJuniorAdmin); err != nil {
		return nil, err
	}
	if s.adminKey == "" ||
		subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
		return nil, ErrInvalidAdminKey
	}
	if err := s.accountStore.UpdateAccountRole(ctx, actor.AccountID, access.JuniorAdmin); err != nil {
		return nil, err
	}
	return s.GetAccountByID(ctx, actor.AccountID)
}

// ListAccounts returns every account whose name or email contains query.
func (s *AccountService) ListAccounts(
	ctx context.Context,
	actor *store.Account,
	query string,
) ([]*store.Account, error) {
	if err := access.Authorize(SubjectOf(actor), access.ManageAccounts); err != nil {
		return nil, err
	}
	accounts, err := s.accountStore.ListAccounts(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	query = strings.TrimSpace(query)
	filtered := make([]*store.Account, 0, len(accounts))
	for _, a := range accounts {
		if query == "" || util.ContainsFold(a.Name, query) || util.ContainsFold(a.Email, query) {
			filtered = append(filtered, s.resolve(a))
		}
	}
	return filtered, nil
}

// ApplyAccountAction promotes, demotes, bans or unbans the target account.
// Banning also removes every session the target holds.
func (s *AccountService) ApplyAccountAction(
	ctx context.Context,
	actor *store.Account,
	targetID int64,
	action access.AccountAction,
) (*store.Account, error) {
	if err := access.Authorize(SubjectOf(actor), access.ManageAccounts); err != nil {
		return nil, err
	}
	target, err := s.GetAccountByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	effect, err := access.ApplyAccountAction(
		SubjectOf(actor),
		access.Target{Role: target.RoleID, Banned: target.Banned},
		action,
	)
	if err != nil {
		return nil, err
	}

	if effect.Role != target.RoleID {
		if err := s.accountStore.UpdateAccountRole(ctx, target.AccountID, effect.Role); err != nil {
			return nil, err
		}
	}
	if effect.Banned != target.Banned {
		if err := s.accountStore.UpdateAccountBanned(ctx, target.AccountID, effect.Banned); err != nil {
			return nil, err
		}
	}
	if effect.SignOut {
		if err := s.accountStore.DeleteAuthSessionsByAccountID(ctx, target.AccountID); err != nil {
			return nil, err
		}
	}

	target.RoleID = effect.Role
	target.Banned = effect.Banned
	return target, nil
}

// InitializeSuperAdmin makes sure the configured super admin email has an
// account. The password comes from password or, when empty, an interactive
// prompt.
func (s *AccountService) InitializeSuperAdmin(ctx context.Context, password string) {
	if s.superAdminEmail == "" {
		log.Println("no super admin email configured, skipping super admin setup")
		return
	}
	_, err := s.accountStore.ReadAccountByEmail(ctx, s.superAdminEmail)
	if err == nil {
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Fatal(err)
	}

	passwordBytes := []byte(password)
	if len(passwordBytes) == 0 {
		fmt.Printf("Create the super admin account for %s\n", s.superAdminEmail)
		fmt.Print("Password: ")
		passwordBytes, err = term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			log.Fatal(err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	name, _, _ := strings.Cut(s.superAdminEmail, "@")
	// the stored role stays regular, super admin is resolved from the email
	if _, err := s.accountStore.CreateAccount(
		ctx,
		s.superAdminEmail,
		name,
		string(hash),
		access.RegularUser,
	); err != nil {
		log.Fatal(err)
	}
}

func (s *AccountService) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	return s.accountStore.DeleteExpiredAuthSessions(ctx, time.Now().UTC())
}

// ScheduleSessionCleanup registers a daily job that removes expired sessions.
func (s *AccountService) ScheduleSessionCleanup(scheduler gocron.Scheduler) error {
	_, err := scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(func() {
			n, err := s.DeleteExpiredSessions(context.Background())
			if err != nil {
				log.Printf("err deleting expired sessions: %+v\n", err)
				return
			}
			if n > 0 {
				log.Printf("deleted %d expired sessions\n", n)
			}
		}),
	)
	return err
}
