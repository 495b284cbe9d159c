package dbschema

import (
	"streamvibe.tv/read-gateway/app/domain/user"
	"streamvibe.tv/read-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

type User struct {
	BaseModel
	Username string `gorm:"uniqueIndex"`
	Avatar   string
	Verified bool
}

func NewSchemaUser(u *user.User) *User {
	return &User{
		BaseModel: BaseModel{
			ID: u.ID,
		},
		Username: u.Username,
		Avatar:   u.Avatar,
		Verified: u.Verified,
	}
}

func (u *User) EtoD() *user.User {
	return &user.User{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
		Verified: u.Verified,
	}
}
