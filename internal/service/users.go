// Package service implements the user and card operations on top of the
// stores and turns store signals into classified errors.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/mesto/internal/apperr"
	"github.com/geocoder89/mesto/internal/domain"
	"github.com/geocoder89/mesto/internal/domain/ids"
	"github.com/geocoder89/mesto/internal/domain/user"
	"github.com/geocoder89/mesto/internal/security"
)

const (
	MsgAuthRequired    = "authentication required"
	MsgInvalidUserData = "invalid data creating user"
	MsgEmailTaken      = "user with this email already exists"
	MsgUserNotFound    = "user not found"
	MsgInvalidUserID   = "invalid user id"
	MsgInvalidProfile  = "invalid data updating profile"
	MsgInvalidAvatar   = "invalid data updating avatar"
)

type UserStore interface {
	List(ctx context.Context) ([]user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (user.Credentials, error)
	Create(ctx context.Context, p user.CreateParams) (user.User, error)
	Update(ctx context.Context, id string, p user.UpdateParams) (user.User, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type Users struct {
	store  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewUsers(store UserStore, hasher PasswordHasher, tokens TokenIssuer) *Users {
	return &Users{store: store, hasher: hasher, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns its profile.
func (s *Users) Register(ctx context.Context, req user.SignUpRequest) (user.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if errors.Is(err, security.ErrPasswordTooLong) {
		return user.User{}, apperr.Wrap(apperr.KindRequest, MsgInvalidUserData, err)
	}
	if err != nil {
		return user.User{}, err
	}

	params := user.CreateParams{
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Name:         req.Name,
		About:        req.About,
		Avatar:       req.Avatar,
	}.WithDefaults()

	u, err := s.store.Create(ctx, params)
	return u, classify(err, messages{
		invalidData: MsgInvalidUserData,
		duplicate:   MsgEmailTaken,
	})
}

// Login returns a signed token for valid credentials. An unknown email and a
// wrong password fail identically.
func (s *Users) Login(ctx context.Context, email, password string) (string, error) {
	creds, err := s.store.GetCredentialsByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return "", apperr.Unauthorized(MsgAuthRequired)
	}
	if err != nil {
		return "", err
	}

	err = s.hasher.Compare(creds.PasswordHash, password)
	if errors.Is(err, security.ErrPasswordMismatch) {
		return "", apperr.Wrap(apperr.KindUnauthorized, MsgAuthRequired, err)
	}
	if err != nil {
		return "", err
	}

	return s.tokens.Issue(creds.ID)
}

func (s *Users) List(ctx context.Context) ([]user.User, error) {
	return s.store.List(ctx)
}

func (s *Users) Get(ctx context.Context, id string) (user.User, error) {
	id, err := ids.Normalize(id)
	if err != nil {
		return user.User{}, apperr.Wrap(apperr.KindRequest, MsgInvalidUserID, err)
	}

	u, err := s.store.GetByID(ctx, id)
	return u, classify(err, messages{
		invalidID: MsgInvalidUserID,
		notFound:  MsgUserNotFound,
	})
}

// Me loads the caller's own profile. The id is a verified token subject, so
// a malformed one is an internal failure, as on every other caller-scoped path.
func (s *Users) Me(ctx context.Context, callerID string) (user.User, error) {
	callerID, err := ids.Normalize(callerID)
	if err != nil {
		return user.User{}, err
	}

	u, err := s.store.GetByID(ctx, callerID)
	return u, classify(err, messages{notFound: MsgUserNotFound})
}

// UpdateProfile changes name and about; nil fields are kept.
func (s *Users) UpdateProfile(ctx context.Context, id string, name, about *string) (user.User, error) {
	return s.update(ctx, id, user.UpdateParams{Name: name, About: about}, MsgInvalidProfile)
}

func (s *Users) UpdateAvatar(ctx context.Context, id, avatar string) (user.User, error) {
	return s.update(ctx, id, user.UpdateParams{Avatar: &avatar}, MsgInvalidAvatar)
}

// update always acts on the caller, so the id is treated like Me's.
func (s *Users) update(ctx context.Context, id string, p user.UpdateParams, invalidMsg string) (user.User, error) {
	id, err := ids.Normalize(id)
	if err != nil {
		return user.User{}, err
	}

	u, err := s.store.Update(ctx, id, p)
	return u, classify(err, messages{
		invalidData: invalidMsg,
		notFound:    MsgUserNotFound,
	})
}
