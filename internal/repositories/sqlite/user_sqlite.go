package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/wellness-service/internal/cache"
	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/repositories"
)

type UserSQLite struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserSQLite(db *gorm.DB, cacheManager *cache.CacheManager) repositories.UserRepository {
	return &UserSQLite{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (u *UserSQLite) Create(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

func (u *UserSQLite) GetByID(ctx context.Context, id uint) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var user models.User

	err := u.cacheManager.User.CacheOrExecute(ctx, cacheKey, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var dbUser models.User
		if err := u.db.WithContext(ctx).First(&dbUser, id).Error; err != nil {
			return nil, err
		}
		return &dbUser, nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (u *UserSQLite) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserSQLite) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (u *UserSQLite) UpdateLanguage(ctx context.Context, id uint, language string) error {
	result := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("language", language)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	// The cached copy is stale now.
	cache.SafeDelete(ctx, u.cacheManager.User, fmt.Sprintf("id:%d", id))
	return nil
}
