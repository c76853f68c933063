package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
	"github.com/RoiCoDA/AbsoluteCinema/internal/repository"
	"github.com/RoiCoDA/AbsoluteCinema/internal/utils"
)

// ErrBadCode is returned when the submitted verification code does
// not match or has expired.
var ErrBadCode = errors.New("invalid or expired verification code")

// CodeStore holds pending verification code hashes keyed by phone
// number, each entry expiring on its own TTL.
type CodeStore interface {
	Put(ctx context.Context, phone, hash string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

// RedisCodeStore keeps code hashes in Redis so every instance behind
// a load balancer sees the same pending codes and expiry is free.
type RedisCodeStore struct {
	client *redis.Client
}

func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client}
}

func codeKey(phone string) string { return "otp:" + phone }

func (s *RedisCodeStore) Put(ctx context.Context, phone, hash string, ttl time.Duration) error {
	return s.client.Set(ctx, codeKey(phone), hash, ttl).Err()
}

func (s *RedisCodeStore) Get(ctx context.Context, phone string) (string, error) {
	hash, err := s.client.Get(ctx, codeKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrBadCode
	}
	return hash, err
}

func (s *RedisCodeStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, codeKey(phone)).Err()
}

// MemoryCodeStore is the single-process fallback used in tests and
// when no Redis is configured.
type MemoryCodeStore struct {
	mu    sync.Mutex
	codes map[string]memoryCode
}

type memoryCode struct {
	hash    string
	expires time.Time
}

func NewMemoryCodeStore() *MemoryCodeStore {
	return &MemoryCodeStore{codes: make(map[string]memoryCode)}
}

func (s *MemoryCodeStore) Put(_ context.Context, phone, hash string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = memoryCode{hash: hash, expires: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryCodeStore) Get(_ context.Context, phone string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[phone]
	if !ok || time.Now().After(c.expires) {
		delete(s.codes, phone)
		return "", ErrBadCode
	}
	return c.hash, nil
}

func (s *MemoryCodeStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, phone)
	return nil
}

// AuthService implements phone login: request a one-time code, verify
// it, get a signed access token. Only the bcrypt hash of the code is
// stored, never the code itself.
type AuthService struct {
	users     *UserService
	codes     CodeStore
	jwtSecret string
	tokenTTL  int // minutes
	codeTTL   time.Duration
	admins    map[string]bool
}

// NewAuthService wires an AuthService. adminPhones lists the
// normalized phone numbers that log in with the admin role.
func NewAuthService(users *UserService, codes CodeStore, jwtSecret string, tokenTTLMin int, codeTTL time.Duration, adminPhones []string) *AuthService {
	admins := make(map[string]bool, len(adminPhones))
	for _, p := range adminPhones {
		if norm, err := utils.NormalizePhone(p); err == nil {
			admins[norm] = true
		}
	}
	return &AuthService{
		users:     users,
		codes:     codes,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTLMin,
		codeTTL:   codeTTL,
		admins:    admins,
	}
}

// RequestCode generates a fresh 4-digit code for the phone and stores
// its hash with the configured TTL. There is no SMS gateway wired in;
// the code is written to the server log, which is how the demo
// environment delivers it.
func (s *AuthService) RequestCode(ctx context.Context, rawPhone string) error {
	phone, err := utils.NormalizePhone(rawPhone)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrValidation, err)
	}
	code, err := utils.NewVerificationCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.codes.Put(ctx, phone, string(hash), s.codeTTL); err != nil {
		return err
	}
	log.Printf("auth: verification code for %s: %s", phone, code)
	return nil
}

// VerifyResult is a successful login: the account (created on first
// login) and a signed access token.
type VerifyResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
	Role  string      `json:"role"`
}

// VerifyCode checks the submitted code against the stored hash. On
// success the code is consumed, the account is found or created, and
// an access token is issued.
func (s *AuthService) VerifyCode(ctx context.Context, rawPhone, code string) (*VerifyResult, error) {
	phone, err := utils.NormalizePhone(rawPhone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrValidation, err)
	}
	hash, err := s.codes.Get(ctx, phone)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return nil, ErrBadCode
	}
	_ = s.codes.Delete(ctx, phone)

	user, err := s.users.FindOrCreate(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user.Banned {
		return nil, repository.ErrUserBanned
	}

	role := "user"
	if s.admins[phone] {
		role = "admin"
	}
	token, err := utils.NewAccessToken(s.jwtSecret, user.ID, role, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{User: user, Token: token.Token, Role: role}, nil
}
