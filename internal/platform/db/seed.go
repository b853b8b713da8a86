package db

import (
	"log/slog"

	"gorm.io/gorm"

	usersentity "forum_backend/internal/feature/users/domain/entity"
	"forum_backend/internal/platform/password"
	"forum_backend/internal/shared/policy"
)

// Seed inserts the base roles and the initial admin account when they are
// missing. Safe to run on every startup.
func Seed(db *gorm.DB) error {
	for _, title := range []string{string(policy.RoleAdmin), string(policy.RoleUser)} {
		role := usersentity.Role{Title: title}
		if err := db.Where("title = ?", title).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}

	var adminRole usersentity.Role
	if err := db.Where("title = ?", string(policy.RoleAdmin)).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&usersentity.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := password.Hash("admin")
	if err != nil {
		return err
	}
	admin := usersentity.User{
		Username:     "admin",
		Email:        "admin@observers.com",
		Password:     hash,
		ProfileImage: usersentity.DefaultProfileImage,
		RoleID:       adminRole.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	slog.Info("seeded initial admin account", "username", admin.Username)
	return nil
}
