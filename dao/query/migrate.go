package query

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/buildhub-lab/buildhub/dao/model"
	"github.com/buildhub-lab/buildhub/pkg/logutils"
)

// Migrate runs all pending schema migrations. Called once at startup,
// before any handler touches the database.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20260301-init-schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&model.User{},
					&model.Group{},
					&model.UserGroup{},
					&model.Project{},
					&model.Build{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					&model.Build{},
					&model.Project{},
					&model.UserGroup{},
					&model.Group{},
					&model.User{},
				)
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return err
	}
	logutils.Log.Info("schema migrations applied")
	return nil
}
