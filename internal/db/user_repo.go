package db

import (
	"context" // Request scoped context
	"errors"  // Error inspection

	"pizza_pos/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// UserRepository stores accounts in the users table
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a repository on db
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func findByUsername(tx *gorm.DB, username string) (domain.Account, error) {
	var a domain.Account
	err := tx.Where("username = ?", username).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Account{}, domain.Wrap(domain.ErrAccountNotFound, username)
	}
	if err != nil {
		return domain.Account{}, domain.Persistence("find account", err)
	}
	return a, nil
}

// FindByUsername looks an account up by exact username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	return findByUsername(r.db.WithContext(ctx), username)
}

// FindByID looks an account up by primary key
func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.Account, error) {
	var a domain.Account
	err := r.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, domain.Persistence("find account", err)
	}
	return a, nil
}

// List returns all accounts ordered by username
func (r *UserRepository) List(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	if err := r.db.WithContext(ctx).Order("username asc").Find(&out).Error; err != nil {
		return nil, domain.Persistence("list accounts", err)
	}
	return out, nil
}

// Count returns the number of admin or non-admin accounts
func (r *UserRepository) Count(ctx context.Context, isAdmin bool) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Account{}).Where("is_admin = ?", isAdmin).Count(&n).Error; err != nil {
		return 0, domain.Persistence("count accounts", err)
	}
	return n, nil
}

func usernameTaken(tx *gorm.DB, username string, exceptID uint) (bool, error) {
	var n int64
	q := tx.Model(&domain.Account{}).Where("username = ?", username)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// isDomain reports whether err came from our own checks inside a transaction
func isDomain(err error) bool {
	return domain.KindOf(err) != domain.KindUnknown
}

// Create inserts a new account
func (r *UserRepository) Create(ctx context.Context, a *domain.Account) error {
	// Atomic check and insert
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := usernameTaken(tx, a.Username, 0)
		if err != nil {
			return err // Return error to rollback
		}
		if taken {
			return domain.Wrap(domain.ErrDuplicateUsername, a.Username)
		}
		return tx.Create(a).Error // Insert the account
	})
	if err != nil && !isDomain(err) {
		return domain.Persistence("create account", err)
	}
	return err
}

// Update edits the account named username
func (r *UserRepository) Update(ctx context.Context, username string, changes domain.Account) (domain.Account, error) {
	var updated domain.Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByUsername(tx, username)
		if err != nil {
			return err
		}
		taken, err := usernameTaken(tx, changes.Username, current.ID)
		if err != nil {
			return err
		}
		if taken {
			return domain.Wrap(domain.ErrDuplicateUsername, changes.Username)
		}
		if current.IsAdmin && !changes.IsAdmin {
			if err := ensureOtherAdmin(tx, current.ID); err != nil {
				return err
			}
		}
		err = tx.Model(&domain.Account{}).Where("id = ?", current.ID).Updates(map[string]any{
			"username": changes.Username,
			"pin":      changes.PIN,
			"is_admin": changes.IsAdmin,
		}).Error
		if err != nil {
			return err
		}
		updated = current
		updated.Username = changes.Username
		updated.PIN = changes.PIN
		updated.IsAdmin = changes.IsAdmin
		return nil
	})
	if err != nil && !isDomain(err) {
		return domain.Account{}, domain.Persistence("update account", err)
	}
	return updated, err
}

// UpdatePIN replaces the PIN of username
func (r *UserRepository) UpdatePIN(ctx context.Context, username, pin string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Account{}).Where("username = ?", username).Update("pin", pin)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// MySQL reports zero rows when the PIN is unchanged, so check existence
			if _, err := findByUsername(tx, username); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil && !isDomain(err) {
		return domain.Persistence("reset PIN", err)
	}
	return err
}

func ensureOtherAdmin(tx *gorm.DB, id uint) error {
	var n int64
	if err := tx.Model(&domain.Account{}).Where("is_admin = ? AND id <> ?", true, id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrLastAdmin
	}
	return nil
}

// Delete removes username unless it is the only admin
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByUsername(tx, username)
		if err != nil {
			return err
		}
		if current.IsAdmin {
			if err := ensureOtherAdmin(tx, current.ID); err != nil {
				return err
			}
		}
		return tx.Delete(&domain.Account{}, current.ID).Error
	})
	if err != nil && !isDomain(err) {
		return domain.Persistence("delete account", err)
	}
	return err
}
