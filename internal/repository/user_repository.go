// Package repository はデータアクセス層のインターフェースと実装を提供する。
package repository

import (
	"kintore-coach-go/internal/model"

	"gorm.io/gorm"
)

// UserRepository はユーザーデータの永続化操作を定義する。
type UserRepository interface {
	Create(user *model.User) error
	FindByUsername(username string) (*model.User, error)
	FindByID(userID uint) (*model.User, error)
	Update(user *model.User) error
}

// userRepository は UserRepository の GORM 実装。
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository は新しい UserRepository を生成する。
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create はデータベースに新しいユーザーを作成する。
func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// FindByUsername はユーザー名でユーザーを検索する。
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID はユーザー ID でユーザーを検索する。
func (r *userRepository) FindByID(userID uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update は既存のユーザーを更新する。
func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}
