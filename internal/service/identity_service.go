package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/pkg/auth"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

const (
	minPasswordLength = 8
	// bcrypt rejects passwords longer than 72 bytes.
	maxPasswordBytes = 72
)

// IdentityService signs users up and in, manages sessions and resolves
// bearer tokens for the auth middleware.
type IdentityService struct {
	users          UserStore
	sessions       SessionStore
	activity       ActivityLog
	notifier       Notifier
	tokens         *auth.TokenIssuer
	bcryptCost     int
	bootstrapAdmin string
	log            *logger.Logger
	now            func() time.Time
}

// IdentityConfig holds the identity settings taken from configuration.
type IdentityConfig struct {
	BcryptCost          int
	BootstrapAdminEmail string
}

// NewIdentityService creates a new identity service.
func NewIdentityService(
	users UserStore,
	sessions SessionStore,
	activity ActivityLog,
	notifier Notifier,
	tokens *auth.TokenIssuer,
	cfg IdentityConfig,
	log *logger.Logger,
) *IdentityService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &IdentityService{
		users:          users,
		sessions:       sessions,
		activity:       activity,
		notifier:       notifier,
		tokens:         tokens,
		bcryptCost:     cost,
		bootstrapAdmin: strings.ToLower(strings.TrimSpace(cfg.BootstrapAdminEmail)),
		log:            log,
		now:            time.Now,
	}
}

var _ auth.SessionResolver = (*IdentityService)(nil)

// SignUpRequest represents a new account.
type SignUpRequest struct {
	Email    string
	Password string
	Name     string
}

// SignInResult is returned by a successful sign-in.
type SignInResult struct {
	Token     string                  `json:"token"`
	ExpiresAt time.Time               `json:"expires_at"`
	SessionID string                  `json:"session_id"`
	User      *repository.UserProfile `json:"user"`
}

// SessionView describes the caller's live session.
type SessionView struct {
	Session *repository.Session     `json:"session"`
	User    *repository.UserProfile `json:"user"`
}

// SignUp creates a partner account awaiting admin review. The configured
// bootstrap admin email is created as an approved admin instead.
func (s *IdentityService) SignUp(ctx context.Context, req *SignUpRequest) (*repository.UserProfile, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, errors.InvalidInput("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, errors.InvalidInput("password", fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	name := trim(req.Name)
	if name == "" {
		return nil, errors.InvalidInput("name", "name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to hash password")
	}

	u := &repository.UserProfile{
		Email:          email,
		Name:           name,
		Role:           repository.RolePartner,
		ApprovalStatus: repository.AccountPending,
		PasswordHash:   string(hash),
	}
	if s.bootstrapAdmin != "" && email == s.bootstrapAdmin {
		u.Role = repository.RoleAdmin
		u.ApprovalStatus = repository.AccountApproved
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.HasCode(err, errors.ErrCodeConflict) {
			return nil, &errors.Error{Code: errors.ErrCodeConflict, Message: "email is already registered", Field: "email"}
		}
		return nil, err
	}

	s.log.Info().
		Str("user_id", u.ID).
		Str("role", u.Role).
		Str("approval_status", u.ApprovalStatus).
		Msg("User signed up")

	appendActivity(ctx, s.activity, s.log, &repository.ActivityEntry{
		ActorID:      u.ID,
		Action:       "user_signed_up",
		ResourceType: repository.TableUsers,
		ResourceID:   u.ID,
		Message:      fmt.Sprintf("%s signed up", u.Name),
	})
	if u.ApprovalStatus == repository.AccountPending {
		s.notifier.Notify(ctx, "user_pending_review", "user", u.ID, u.ID,
			adminIDs(ctx, s.users), map[string]interface{}{"name": u.Name, "email": u.Email})
	}
	return u, nil
}

// SignIn verifies credentials and opens a session. Only approved accounts may
// sign in.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, errors.Unauthenticated("invalid email or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthenticated("invalid email or password")
	}

	switch u.ApprovalStatus {
	case repository.AccountApproved:
	case repository.AccountRejected:
		return nil, errors.Forbidden("account has been rejected")
	default:
		return nil, errors.Forbidden("account is awaiting approval")
	}

	sessionID := uuid.NewString()
	token, expires, err := s.tokens.Issue(u.ID, sessionID, u.Role)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to issue token")
	}

	sess := &repository.Session{
		ID:        sessionID,
		UserID:    u.ID,
		IssuedAt:  s.now().UTC(),
		ExpiresAt: expires.UTC(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", u.ID).
		Str("session_id", sessionID).
		Msg("User signed in")

	return &SignInResult{Token: token, ExpiresAt: sess.ExpiresAt, SessionID: sessionID, User: u}, nil
}

// SignOut revokes a session.
func (s *IdentityService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(ctx, sessionID, s.now().UTC()); err != nil {
		return err
	}
	s.log.Info().Str("session_id", sessionID).Msg("User signed out")
	return nil
}

// ResolveSession validates a bearer token against its session and the
// current profile. The role comes from the profile, not the token, so role
// changes apply immediately.
func (s *IdentityService) ResolveSession(ctx context.Context, token string) (*auth.UserContext, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUnauthenticated, "invalid token")
	}

	sess, err := s.sessions.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, errors.Unauthenticated("unknown session")
		}
		return nil, err
	}
	if sess.UserID != claims.Subject || !sess.Active(s.now()) {
		return nil, errors.Unauthenticated("session is no longer active")
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, errors.Unauthenticated("unknown user")
		}
		return nil, err
	}
	if u.ApprovalStatus != repository.AccountApproved {
		return nil, errors.Unauthenticated("account is not approved")
	}

	return &auth.UserContext{UserID: u.ID, SessionID: sess.ID, Role: u.Role}, nil
}

// CurrentSession returns the live session and profile for a session id.
func (s *IdentityService) CurrentSession(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Active(s.now()) {
		return nil, errors.Unauthenticated("session is no longer active")
	}
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return &SessionView{Session: sess, User: u}, nil
}

// ReviewUser approves or rejects a pending account. Admin only.
func (s *IdentityService) ReviewUser(ctx context.Context, actorID, userID, status string) (*repository.UserProfile, error) {
	if status != repository.AccountApproved && status != repository.AccountRejected {
		return nil, errors.InvalidInput("status", "status must be approved or rejected")
	}
	actor, err := requireAdmin(ctx, s.users, actorID)
	if err != nil {
		return nil, err
	}
	if actorID == userID {
		return nil, errors.InvalidInput("user_id", "admins cannot review their own account")
	}
	if err := s.users.UpdateApprovalStatus(ctx, userID, status); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Str("approval_status", status).
		Str("reviewed_by", actorID).
		Msg("User reviewed")

	appendActivity(ctx, s.activity, s.log, &repository.ActivityEntry{
		ActorID:      actorID,
		Action:       "user_" + status,
		ResourceType: repository.TableUsers,
		ResourceID:   userID,
		Message:      fmt.Sprintf("%s %s %s", actor.Name, status, u.Name),
	})
	s.notifier.Notify(ctx, "account_"+status, "user", userID, actorID, []string{userID}, nil)
	return u, nil
}

// SetRole changes a user's role. Admin only; an admin cannot demote
// themselves.
func (s *IdentityService) SetRole(ctx context.Context, actorID, userID, role string) (*repository.UserProfile, error) {
	if role != repository.RoleAdmin && role != repository.RolePartner {
		return nil, errors.InvalidInput("role", "role must be admin or partner")
	}
	actor, err := requireAdmin(ctx, s.users, actorID)
	if err != nil {
		return nil, err
	}
	if actorID == userID && role != repository.RoleAdmin {
		return nil, errors.InvalidInput("role", "admins cannot demote themselves")
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Str("role", role).
		Str("changed_by", actorID).
		Msg("User role changed")

	appendActivity(ctx, s.activity, s.log, &repository.ActivityEntry{
		ActorID:      actorID,
		Action:       "user_role_changed",
		ResourceType: repository.TableUsers,
		ResourceID:   userID,
		Message:      fmt.Sprintf("%s made %s %s", actor.Name, u.Name, role),
		Metadata:     map[string]interface{}{"role": role},
	})
	return u, nil
}

// ListUsers lists profiles, e.g. for team assignment or the review queue.
func (s *IdentityService) ListUsers(ctx context.Context, f repository.UserFilter) ([]*repository.UserProfile, error) {
	return s.users.List(ctx, f)
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", errors.InvalidInput("email", "invalid email address")
	}
	return strings.ToLower(addr.Address), nil
}
