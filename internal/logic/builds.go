package logic

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/buildhub-lab/buildhub/dao/model"
)

// BuildService is the build repository consumed by handlers and by
// ComplexLogic. Deletion enforces build-level rights and lifecycle
// checks; everything else is plain queries.
type BuildService interface {
	Create(ctx context.Context, build *model.Build) error
	GetByID(ctx context.Context, buildID uint) (*model.Build, error)
	BuildsByProject(ctx context.Context, projectID uint) ([]*model.Build, error)
	DeleteBuild(ctx context.Context, actor Actor, build *model.Build) error
	CountTaskQueue(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.BuildStatus) (int64, error)
}

type buildService struct {
	db *gorm.DB
}

func NewBuildService(db *gorm.DB) BuildService {
	return &buildService{db: db}
}

func (s *buildService) Create(ctx context.Context, build *model.Build) error {
	return s.db.WithContext(ctx).Create(build).Error
}

func (s *buildService) GetByID(ctx context.Context, buildID uint) (*model.Build, error) {
	var build model.Build
	if err := s.db.WithContext(ctx).First(&build, buildID).Error; err != nil {
		return nil, err
	}
	return &build, nil
}

func (s *buildService) BuildsByProject(ctx context.Context, projectID uint) ([]*model.Build, error) {
	var builds []*model.Build
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id").
		Find(&builds).Error
	return builds, err
}

// DeleteBuild removes one build row. It fails with ActionInProgress
// while the build is unfinished and with InsufficientRights unless the
// actor is a platform admin, the build submitter, or the project owner.
func (s *buildService) DeleteBuild(ctx context.Context, actor Actor, build *model.Build) error {
	if !build.Status.Finished() {
		return &ActionInProgressError{Action: build.Status.String()}
	}

	if !actor.IsAdmin() && actor.ID != build.UserID {
		var project model.Project
		if err := s.db.WithContext(ctx).First(&project, build.ProjectID).Error; err != nil {
			return err
		}
		if project.OwnerID == nil || *project.OwnerID != actor.ID {
			return &InsufficientRightsError{
				Message: fmt.Sprintf("user %s is not allowed to delete build %d", actor.Name, build.ID),
			}
		}
	}

	return s.db.WithContext(ctx).Delete(&model.Build{}, build.ID).Error
}

// CountTaskQueue counts builds queued but not yet claimed by any
// worker. Stale waiting rows are not excluded here, the dispatcher
// requeues them on its own schedule.
func (s *buildService) CountTaskQueue(ctx context.Context) (int64, error) {
	return s.countWhere(ctx, "status = ?", model.BuildWaiting)
}

func (s *buildService) CountByStatus(ctx context.Context, status model.BuildStatus) (int64, error) {
	return s.countWhere(ctx, "status = ?", status)
}

func (s *buildService) countWhere(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Build{}).Where(query, args...).Count(&count).Error
	return count, err
}

// NewBuild fills the bookkeeping fields of a freshly submitted build.
func NewBuild(taskID string, projectID, userID uint, pkg string, st model.SourceType, source []byte) *model.Build {
	return &model.Build{
		TaskID:      taskID,
		ProjectID:   projectID,
		UserID:      userID,
		PackageName: pkg,
		Status:      model.BuildWaiting,
		SourceType:  st,
		Source:      source,
		SubmittedAt: time.Now(),
	}
}
