package helper

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/buildhub-lab/buildhub/dao/query"
	"github.com/buildhub-lab/buildhub/internal/handler"
	"github.com/buildhub-lab/buildhub/internal/logic"
	"github.com/buildhub-lab/buildhub/pkg/config"
)

// ConfigInitializer wires configuration, database, and the logic
// services the handlers consume.
type ConfigInitializer struct {
	backendConfig *config.Config
}

func NewConfigInitializer() *ConfigInitializer {
	return &ConfigInitializer{
		backendConfig: config.GetConfig(),
	}
}

func (ci *ConfigInitializer) GetBackendConfig() *config.Config {
	return ci.backendConfig
}

// LoadDebugEnvironment loads .debug.env and port overrides in debug
// mode; release mode runs entirely off the config file.
func (ci *ConfigInitializer) LoadDebugEnvironment() error {
	if gin.Mode() != gin.DebugMode {
		return nil
	}

	err := godotenv.Load(".debug.env")
	if err != nil {
		return err
	}

	be := os.Getenv("BUILDHUB_BE_PORT")
	if be == "" {
		panic("BUILDHUB_BE_PORT is not set")
	}
	ci.backendConfig.ServerAddr = ":" + be

	return nil
}

// InitializeRegisterConfig opens the database, runs migrations, and
// builds the services and the cross-entity facade.
func (ci *ConfigInitializer) InitializeRegisterConfig() (*handler.RegisterConfig, error) {
	db := query.GetDB()
	if err := query.Migrate(db); err != nil {
		return nil, err
	}

	builds := logic.NewBuildService(db)
	projects := logic.NewProjectService(db)
	users := logic.NewUserService(db)

	return &handler.RegisterConfig{
		Complex:  logic.NewComplexLogic(builds, projects, users),
		Builds:   builds,
		Projects: projects,
		Users:    users,
	}, nil
}
