// Package model はデータベースのテーブルに対応する Go 構造体を定義する。
package model

import "time"

// User はデータベースの 'users' テーブルに対応する。
type User struct {
	// ID は GORM が管理する主キー。
	ID uint `gorm:"primaryKey" json:"id"`
	// Username はログインに使う一意なユーザー名。記録と AI 連携の識別子にもなる。
	Username string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	// Password は bcrypt でハッシュ化されたパスワード。レスポンスには含めない。
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	// Role はユーザーの役割。"USER" または "ADMIN"。
	Role string `gorm:"type:varchar(20);not null;default:USER" json:"role"`
	// CreatedAt / UpdatedAt は GORM が自動管理する。
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName はこのモデルが対応するテーブル名を指定する。
func (User) TableName() string {
	return "users"
}
