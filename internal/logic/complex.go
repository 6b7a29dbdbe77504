// Operations that span multiple entities live here, so the per-entity
// services stay single-purpose.
package logic

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/buildhub-lab/buildhub/dao/model"
)

type ComplexLogic struct {
	builds   BuildService
	projects ProjectService
	users    UserService
}

func NewComplexLogic(builds BuildService, projects ProjectService, users UserService) *ComplexLogic {
	return &ComplexLogic{
		builds:   builds,
		projects: projects,
		users:    users,
	}
}

// DeleteProject deletes a project and all its builds. Every child
// build is deleted first, the project row last. The cascade is
// explicit and best-effort: it stops at the first build that fails
// with ActionInProgress or InsufficientRights, leaving already-deleted
// builds gone and the project intact. There is no wrapping transaction
// and no compensation; the caller surfaces the partial state.
func (l *ComplexLogic) DeleteProject(ctx context.Context, actor Actor, project *model.Project) error {
	builds, err := l.builds.BuildsByProject(ctx, project.ID)
	if err != nil {
		return err
	}

	for _, build := range builds {
		if err := l.builds.DeleteBuild(ctx, actor, build); err != nil {
			klog.V(2).Infof("delete of project %s stopped at build %d: %v", project.Name, build.ID, err)
			return err
		}
	}

	return l.projects.DeleteUnsafe(ctx, actor, project)
}

// ResolveGroup looks a group up by alias. Exactly one match is
// required; zero or multiple matches fail with NotFound naming the
// alias.
func (l *ComplexLogic) ResolveGroup(ctx context.Context, groupName string) (*model.Group, error) {
	groups, err := l.users.GroupsByAlias(ctx, groupName)
	if err != nil {
		return nil, err
	}
	if len(groups) != 1 {
		return nil, newNotFound("Group %s does not exist.", groupName)
	}
	return groups[0], nil
}

// ResolveGroupProject resolves a project inside a group, failing with
// NotFound naming whichever of the two lookups missed.
func (l *ComplexLogic) ResolveGroupProject(ctx context.Context, groupName, projectName string) (*model.Project, error) {
	group, err := l.ResolveGroup(ctx, groupName)
	if err != nil {
		return nil, err
	}

	project, err := l.projects.GetByGroup(ctx, group.ID, projectName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newNotFound("Project %s does not exist.", projectName)
		}
		return nil, err
	}
	return project, nil
}

// ActiveGroupsForUser returns the groups out of the actor's team list
// that contain the given user. An actor without teams gets an empty
// result, not an error.
func (l *ComplexLogic) ActiveGroupsForUser(ctx context.Context, actor Actor, userName string) ([]*model.Group, error) {
	if len(actor.Teams) == 0 {
		return []*model.Group{}, nil
	}
	return l.users.GroupsByNamesWithMember(ctx, actor.Teams, userName)
}

// QueueSizes holds one count per dashboard-relevant build state.
type QueueSizes struct {
	Waiting   int64 `json:"waiting"`
	Running   int64 `json:"running"`
	Importing int64 `json:"importing"`
}

// QueueSizes runs three independent counts. A build can move between
// states between the counts; the result is eventually consistent and
// meant for dashboards, not accounting.
func (l *ComplexLogic) QueueSizes(ctx context.Context) (QueueSizes, error) {
	var sizes QueueSizes
	var err error

	if sizes.Waiting, err = l.builds.CountTaskQueue(ctx); err != nil {
		return sizes, err
	}
	if sizes.Running, err = l.builds.CountByStatus(ctx, model.BuildRunning); err != nil {
		return sizes, err
	}
	if sizes.Importing, err = l.builds.CountByStatus(ctx, model.BuildImporting); err != nil {
		return sizes, err
	}
	return sizes, nil
}
