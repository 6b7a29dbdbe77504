package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Build is one build task belonging to a project. A build always
// references a live project at creation time; project deletion walks
// builds explicitly instead of relying on database cascades.
type Build struct {
	gorm.Model
	TaskID      string         `gorm:"uniqueIndex;type:varchar(36);not null;comment:dispatcher correlation id"`
	ProjectID   uint           `gorm:"index;not null"`
	Project     Project        `gorm:"foreignKey:ProjectID"`
	UserID      uint           `gorm:"index;not null;comment:submitting user"`
	User        User           `gorm:"foreignKey:UserID"`
	PackageName string         `gorm:"type:varchar(128);comment:package the build produces"`
	Status      BuildStatus    `gorm:"index;type:smallint;not null;comment:build lifecycle status"`
	SourceType  SourceType     `gorm:"type:smallint;not null;comment:how the build source is obtained"`
	Source      datatypes.JSON `gorm:"comment:source-type-specific parameters"`

	SubmittedAt time.Time `gorm:"not null;comment:submission time"`
	StartedAt   *time.Time
	EndedAt     *time.Time
}
