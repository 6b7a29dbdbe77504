package model

import (
	"gorm.io/gorm"
)

// User is the basic entity of the system
type User struct {
	gorm.Model
	Name       string  `gorm:"uniqueIndex;type:varchar(32);not null;comment:username"`
	Email      *string `gorm:"type:varchar(128);comment:contact email"`
	Password   *string `gorm:"type:varchar(128);comment:bcrypt password hash"`
	Role       Role    `gorm:"type:smallint;not null;comment:platform role (guest, user, admin)"`
	UserGroups []UserGroup
}

// Group is a team of users that can own projects together.
// The alias is what FAS-style group names resolve against; it is indexed
// but deliberately not unique, lookups must cope with ambiguous aliases.
type Group struct {
	gorm.Model
	Name       string  `gorm:"index;type:varchar(64);not null;comment:group alias"`
	Nickname   *string `gorm:"type:varchar(64);comment:display name"`
	UserGroups []UserGroup
}

type UserGroup struct {
	gorm.Model
	UserID  uint `gorm:"primaryKey"`
	GroupID uint `gorm:"primaryKey"`
	Role    Role `gorm:"type:smallint;comment:role inside the group (user, admin)"`
}
