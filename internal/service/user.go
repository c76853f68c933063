package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
	"github.com/RoiCoDA/AbsoluteCinema/internal/repository"
	"github.com/RoiCoDA/AbsoluteCinema/internal/utils"
)

// UserService owns the user directory. Users are keyed by phone
// number; the account springs into existence on first verified login
// and registration only fills in the chosen username afterwards.
type UserService struct {
	users repository.UserStore
}

func NewUserService(st repository.Stores) *UserService {
	return &UserService{users: st.Users}
}

// Get returns the user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// FindOrCreate resolves a phone number to its account, creating one
// on first contact. The phone is normalized first, so "0541112223"
// and "972541112223" land on the same account. New accounts get a
// placeholder name derived from the last digits until the user
// registers a real one.
func (s *UserService) FindOrCreate(ctx context.Context, rawPhone string) (*model.User, error) {
	phone, err := utils.NormalizePhone(rawPhone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrValidation, err)
	}
	u, err := s.users.GetByPhone(ctx, phone)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	u = &model.User{
		ID:          utils.NewID("u"),
		PhoneNumber: phone,
		FullName:    placeholderName(phone),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		// Two first logins can race on the same phone; the loser just
		// reads the row the winner created.
		if existing, lookupErr := s.users.GetByPhone(ctx, phone); lookupErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return u, nil
}

// Register sets the user's chosen username and full name. Usernames
// are unique case-insensitively; a taken name is a conflict even when
// the case differs.
func (s *UserService) Register(ctx context.Context, userID, username, fullName string) (*model.User, error) {
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	if len(username) < 3 {
		return nil, fmt.Errorf("%w: username must be at least 3 characters", repository.ErrValidation)
	}
	if len(fullName) < 2 {
		return nil, fmt.Errorf("%w: full name must be at least 2 characters", repository.ErrValidation)
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if other, err := s.users.GetByUsername(ctx, username); err == nil && other.ID != u.ID {
		return nil, repository.ErrUsernameTaken
	} else if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	u.Username = username
	u.FullName = fullName
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// placeholderName builds the default display name for an account that
// has not registered yet, e.g. "+972541112223" -> "User 2223".
func placeholderName(phone string) string {
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return "User " + digits
}
