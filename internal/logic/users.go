package logic

import (
	"context"

	"gorm.io/gorm"

	"github.com/buildhub-lab/buildhub/dao/model"
)

// UserService is the user/group repository.
type UserService interface {
	GetByName(ctx context.Context, name string) (*model.User, error)
	// GroupsByAlias returns every group matching the alias; callers
	// that need exactly one match check the length themselves.
	GroupsByAlias(ctx context.Context, alias string) ([]*model.Group, error)
	GroupsByNames(ctx context.Context, names []string) ([]*model.Group, error)
	// GroupsByNamesWithMember restricts GroupsByNames to groups that
	// contain the named user.
	GroupsByNamesWithMember(ctx context.Context, names []string, userName string) ([]*model.Group, error)
	GroupsForUser(ctx context.Context, userID uint) ([]*model.Group, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) GetByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GroupsByAlias(ctx context.Context, alias string) ([]*model.Group, error) {
	var groups []*model.Group
	// Two rows are enough to tell "exactly one" from "ambiguous".
	err := s.db.WithContext(ctx).Where("name = ?", alias).Limit(2).Find(&groups).Error
	return groups, err
}

func (s *userService) GroupsByNames(ctx context.Context, names []string) ([]*model.Group, error) {
	var groups []*model.Group
	err := s.db.WithContext(ctx).Where("name IN ?", names).Order("id").Find(&groups).Error
	return groups, err
}

func (s *userService) GroupsByNamesWithMember(ctx context.Context, names []string, userName string) ([]*model.Group, error) {
	var groups []*model.Group
	err := s.db.WithContext(ctx).Model(&model.Group{}).
		Joins("JOIN user_groups ON user_groups.group_id = groups.id").
		Joins("JOIN users ON users.id = user_groups.user_id").
		Where("groups.name IN ? AND users.name = ?", names, userName).
		Order("groups.id").
		Find(&groups).Error
	return groups, err
}

func (s *userService) GroupsForUser(ctx context.Context, userID uint) ([]*model.Group, error) {
	var groups []*model.Group
	err := s.db.WithContext(ctx).Model(&model.Group{}).
		Joins("JOIN user_groups ON user_groups.group_id = groups.id").
		Where("user_groups.user_id = ?", userID).
		Order("groups.id").
		Find(&groups).Error
	return groups, err
}
