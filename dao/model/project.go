package model

import "gorm.io/gorm"

// Project ("copr") is a named collection of builds owned by either a
// single user or a group. The name is unique within its owner scope,
// not globally.
type Project struct {
	gorm.Model
	Name        string  `gorm:"index:idx_project_owner,unique;type:varchar(64);not null;comment:project name"`
	Description *string `gorm:"type:varchar(256);comment:project description"`
	OwnerID     *uint   `gorm:"index:idx_project_owner,unique;comment:owning user, null for group projects"`
	GroupID     *uint   `gorm:"index:idx_project_owner,unique;comment:owning group, null for personal projects"`
	Builds      []Build
}
