package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/nepal-egov/polling-backend/internal/models"
)

// UserService covers the admin back office for accounts: listing, edits,
// role changes and deletion.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserUpdate is a partial edit of an account; nil fields are left untouched.
type UserUpdate struct {
	FullName          *string
	Phone             *string
	District          *string
	Municipality      *string
	WardNumber        *int
	CitizenshipNumber *string
}

func (s *UserService) requireAdmin(actor Actor) error {
	if !actor.Authenticated() {
		return ErrAuthRequired
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// List returns all accounts, newest first.
func (s *UserService) List(actor Actor) ([]models.User, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Update applies a partial edit to an account.
func (s *UserService) Update(actor Actor, id uint, update UserUpdate) (*models.User, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if update.FullName != nil {
		if strings.TrimSpace(*update.FullName) == "" {
			return nil, fmt.Errorf("%w: full name is required", ErrValidation)
		}
		user.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.District != nil {
		user.District = *update.District
	}
	if update.Municipality != nil {
		user.Municipality = *update.Municipality
	}
	if update.WardNumber != nil {
		user.WardNumber = *update.WardNumber
	}
	if update.CitizenshipNumber != nil {
		user.CitizenshipNumber = *update.CitizenshipNumber
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetRole switches an account between the user and admin roles. An admin
// cannot change their own role, so the system always keeps at least the
// acting admin.
func (s *UserService) SetRole(actor Actor, id uint, role models.Role) (*models.User, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if actor.UserID == id {
		return nil, fmt.Errorf("%w: cannot change own role", ErrConflict)
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user.Role = role
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes an account and its votes in one transaction.
func (s *UserService) Delete(actor Actor, id uint) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
