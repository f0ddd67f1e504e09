package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/auth"
	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

type UserService struct {
	users    *repository.UserRepository
	activity *repository.ActivityRepository
	issuer   *auth.Issuer
}

func NewUserService(users *repository.UserRepository, activity *repository.ActivityRepository, issuer *auth.Issuer) *UserService {
	return &UserService{users: users, activity: activity, issuer: issuer}
}

type RegisterUserInput struct {
	Username  string
	Password  string
	Role      model.Role
	IsAgent   bool
	Principal model.Principal
}

type UpdateUserInput struct {
	UserID    int64
	Username  *string
	Password  *string
	Role      *model.Role
	Principal model.Principal
}

type LoginResult struct {
	Token string
	User  model.User
}

// Bootstrap seeds the first admin account so a fresh database can be
// logged into. It is a no-op once any user exists; with an empty table
// and no configured password it reports an error rather than leave the
// deployment unreachable.
func (s *UserService) Bootstrap(ctx context.Context, username, password string) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if username == "" || password == "" {
		return false, fmt.Errorf("%w: no users exist and no bootstrap admin is configured", ErrInvalidInput)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	id, err := s.users.Create(ctx, model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	s.audit(ctx, id, "user_registered", fmt.Sprintf("bootstrap admin %q (id %d)", username, id))
	return true, nil
}

func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (*model.User, error) {
	if !input.Principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	role := input.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be user or admin", ErrInvalidInput)
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, input.Username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     input.Username,
		PasswordHash: hash,
		IsAgent:      input.IsAgent,
		Role:         role,
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.audit(ctx, input.Principal.UserID, "user_registered", fmt.Sprintf("user %q (id %d)", user.Username, user.ID))
	return &user, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(model.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		IsAgent:  user.IsAgent,
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, user.ID, "user_login", fmt.Sprintf("user %q logged in", user.Username))
	return &LoginResult{Token: token, User: *user}, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, principal model.Principal, username string) (*model.User, error) {
	if !principal.IsAdmin() && principal.Username != username {
		return nil, ErrPermissionDenied
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, principal model.Principal) ([]model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.users.List(ctx)
}

func (s *UserService) Update(ctx context.Context, input UpdateUserInput) error {
	if !input.Principal.IsAdmin() && input.Principal.UserID != input.UserID {
		return ErrPermissionDenied
	}
	if input.Role != nil {
		if !input.Principal.IsAdmin() {
			return ErrPermissionDenied
		}
		if !input.Role.Valid() {
			return fmt.Errorf("%w: role must be user or admin", ErrInvalidInput)
		}
	}

	var hash *string
	if input.Password != nil {
		h, err := auth.HashPassword(*input.Password)
		if err != nil {
			return err
		}
		hash = &h
	}

	if err := s.users.Update(ctx, input.UserID, input.Username, hash, input.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.audit(ctx, input.Principal.UserID, "user_updated", fmt.Sprintf("user id %d", input.UserID))
	return nil
}

func (s *UserService) Delete(ctx context.Context, principal model.Principal, id int64) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if principal.UserID == id {
		return fmt.Errorf("%w: cannot delete own account", ErrInvalidInput)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, principal.UserID, "user_deleted", fmt.Sprintf("user id %d", id))
	return nil
}

// Audit failures never fail the operation that triggered them.
func (s *UserService) audit(ctx context.Context, userID int64, action, details string) {
	_ = s.activity.Append(ctx, userID, action, details)
}
