package logic

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/buildhub-lab/buildhub/dao/model"
)

// ProjectService is the project repository.
type ProjectService interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, projectID uint) (*model.Project, error)
	GetByGroup(ctx context.Context, groupID uint, name string) (*model.Project, error)
	GetByOwner(ctx context.Context, ownerID uint, name string) (*model.Project, error)
	ListForUser(ctx context.Context, userID uint) ([]*model.Project, error)
	ListAll(ctx context.Context) ([]*model.Project, error)
	DeleteUnsafe(ctx context.Context, actor Actor, project *model.Project) error
}

type projectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) ProjectService {
	return &projectService{db: db}
}

func (s *projectService) Create(ctx context.Context, project *model.Project) error {
	return s.db.WithContext(ctx).Create(project).Error
}

func (s *projectService) GetByID(ctx context.Context, projectID uint) (*model.Project, error) {
	var project model.Project
	if err := s.db.WithContext(ctx).First(&project, projectID).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *projectService) GetByGroup(ctx context.Context, groupID uint, name string) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).
		Where("group_id = ? AND name = ?", groupID, name).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *projectService) GetByOwner(ctx context.Context, ownerID uint, name string) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND name = ?", ownerID, name).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListForUser returns personal projects plus projects of groups the
// user belongs to.
func (s *projectService) ListForUser(ctx context.Context, userID uint) ([]*model.Project, error) {
	var projects []*model.Project
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Or("group_id IN (?)", s.db.Model(&model.UserGroup{}).Select("group_id").Where("user_id = ?", userID)).
		Order("id").
		Find(&projects).Error
	return projects, err
}

func (s *projectService) ListAll(ctx context.Context) ([]*model.Project, error) {
	var projects []*model.Project
	err := s.db.WithContext(ctx).Order("id").Find(&projects).Error
	return projects, err
}

// DeleteUnsafe removes the project row without touching its builds.
// "Unsafe" means the caller is responsible for having processed all
// child builds first; rights are still checked here.
func (s *projectService) DeleteUnsafe(ctx context.Context, actor Actor, project *model.Project) error {
	if !actor.IsAdmin() && (project.OwnerID == nil || *project.OwnerID != actor.ID) {
		if project.GroupID == nil || !s.isGroupAdmin(ctx, actor.ID, *project.GroupID) {
			return &InsufficientRightsError{
				Message: fmt.Sprintf("user %s is not allowed to delete project %s", actor.Name, project.Name),
			}
		}
	}
	return s.db.WithContext(ctx).Delete(&model.Project{}, project.ID).Error
}

func (s *projectService) isGroupAdmin(ctx context.Context, userID, groupID uint) bool {
	var count int64
	s.db.WithContext(ctx).Model(&model.UserGroup{}).
		Where("user_id = ? AND group_id = ? AND role = ?", userID, groupID, model.RoleAdmin).
		Count(&count)
	return count > 0
}
