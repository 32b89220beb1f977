package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"marketsim/internal/models"
)

var (
	ErrUserExists         = errors.New("account already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore manages accounts. With a database handle it persists users; with
// a nil handle it keeps them in process, which is enough for single-node
// deployments and tests.
type UserStore struct {
	db *gorm.DB

	mu     sync.RWMutex
	byID   map[string]*models.User
	byName map[string]string // lowercased email or username -> user id
}

// NewUserStore creates a store backed by db, or by memory when db is nil.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{
		db:     db,
		byID:   make(map[string]*models.User),
		byName: make(map[string]string),
	}
}

// RegisterParams is the input to Register. Exactly the fields a signup form
// collects; at least one of Email and Username must be set.
type RegisterParams struct {
	Email       string
	Username    string
	DisplayName string
	Password    string
	Role        models.Role
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserStore) Register(p RegisterParams) (*models.User, error) {
	// Both identifiers are stored lowercase so lookups are case-insensitive
	// on every backend.
	email := strings.TrimSpace(strings.ToLower(p.Email))
	username := strings.TrimSpace(strings.ToLower(p.Username))
	if email == "" && username == "" {
		return nil, fmt.Errorf("email or username is required")
	}
	if len(p.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := p.Role
	if role == "" {
		role = models.RoleUser
	}
	display := strings.TrimSpace(p.DisplayName)
	if display == "" {
		if username != "" {
			display = username
		} else {
			display = strings.SplitN(email, "@", 2)[0]
		}
	}

	user := &models.User{
		UserID:       uuid.NewString(),
		DisplayName:  display,
		PasswordHash: string(hash),
		Role:         role,
	}
	if email != "" {
		user.Email = &email
	}
	if username != "" {
		user.Username = &username
	}

	if err := s.insert(user); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.UserID).Str("role", string(role)).Msg("user registered")
	return user, nil
}

// Authenticate resolves a login (email or username) and verifies the
// password. Lookup misses and bad passwords return the same error.
func (s *UserStore) Authenticate(login, password string) (*models.User, error) {
	user, err := s.FindByLogin(login)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// FindByLogin looks a user up by email or username, case-insensitively.
func (s *UserStore) FindByLogin(login string) (*models.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" {
		return nil, ErrUserNotFound
	}

	if s.db != nil {
		var user models.User
		err := s.db.Where("email = ? OR username = ?", login, login).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		return &user, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[login]
	if !ok {
		return nil, ErrUserNotFound
	}
	copy := *s.byID[id]
	return &copy, nil
}

// FindByID looks a user up by their opaque id.
func (s *UserStore) FindByID(userID string) (*models.User, error) {
	if s.db != nil {
		var user models.User
		err := s.db.Where("user_id = ?", userID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		return &user, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	copy := *user
	return &copy, nil
}

// RecordGame folds a finished session's return percentage into the user's
// aggregate stats.
func (s *UserStore) RecordGame(userID string, returnPct float64) (*models.User, error) {
	if s.db != nil {
		var user models.User
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUserNotFound
				}
				return err
			}
			user.RecordGame(returnPct)
			return tx.Model(&user).Updates(map[string]interface{}{
				"games_played":   user.GamesPlayed,
				"best_return":    user.BestReturn,
				"average_return": user.AverageReturn,
			}).Error
		})
		if err != nil {
			return nil, err
		}
		return &user, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	user.RecordGame(returnPct)
	copy := *user
	return &copy, nil
}

// Seed ensures a privileged account exists, creating it on first start and
// leaving it alone afterwards. Used for the admin and tester accounts named
// in the environment.
func (s *UserStore) Seed(username, password string, role models.Role) error {
	if username == "" || password == "" {
		return nil
	}
	if _, err := s.FindByLogin(username); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}
	_, err := s.Register(RegisterParams{Username: username, Password: password, Role: role})
	return err
}

func (s *UserStore) insert(user *models.User) error {
	if s.db != nil {
		if err := s.db.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
				return ErrUserExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if user.Email != nil {
		if _, taken := s.byName[*user.Email]; taken {
			return ErrUserExists
		}
	}
	if user.Username != nil {
		if _, taken := s.byName[*user.Username]; taken {
			return ErrUserExists
		}
	}
	s.byID[user.UserID] = user
	if user.Email != nil {
		s.byName[*user.Email] = user.UserID
	}
	if user.Username != nil {
		s.byName[*user.Username] = user.UserID
	}
	return nil
}
