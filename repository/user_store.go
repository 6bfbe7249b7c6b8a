package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JerryLinyx/MarketDigest/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// UserStore owns registered users; the notifier only reads their addresses.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListEmails(ctx context.Context) ([]string, error)
}

type GormUserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// Create relies on the unique email index; the pool must be opened with
// TranslateError so a duplicate surfaces as gorm.ErrDuplicatedKey.
func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	return insertUserErr(s.insert(ctx, user).Error)
}

func (s *GormUserStore) insert(ctx context.Context, user *models.User) *gorm.DB {
	user.Email = normalizeEmail(user.Email)
	return s.db.WithContext(ctx).Create(user)
}

func insertUserErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrUserExists
	default:
		return fmt.Errorf("insert user: %w", err)
	}
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.findByEmail(ctx, email, &user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) findByEmail(ctx context.Context, email string, dest *models.User) *gorm.DB {
	return s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(dest)
}

func (s *GormUserStore) ListEmails(ctx context.Context) ([]string, error) {
	emails := []string{}
	if err := s.pluckEmails(ctx, &emails).Error; err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	return emails, nil
}

func (s *GormUserStore) pluckEmails(ctx context.Context, dest *[]string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.User{}).Order("id").Pluck("email", dest)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
