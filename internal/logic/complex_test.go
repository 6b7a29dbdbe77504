package logic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/buildhub-lab/buildhub/dao/model"
)

type fakeBuildService struct {
	builds   []*model.Build
	deleted  []uint
	failOnID uint
	failWith error
	counts   map[model.BuildStatus]int64
}

func (f *fakeBuildService) Create(_ context.Context, _ *model.Build) error { return nil }

func (f *fakeBuildService) GetByID(_ context.Context, _ uint) (*model.Build, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBuildService) BuildsByProject(_ context.Context, _ uint) ([]*model.Build, error) {
	return f.builds, nil
}

func (f *fakeBuildService) DeleteBuild(_ context.Context, _ Actor, build *model.Build) error {
	if f.failOnID != 0 && build.ID == f.failOnID {
		return f.failWith
	}
	f.deleted = append(f.deleted, build.ID)
	return nil
}

func (f *fakeBuildService) CountTaskQueue(_ context.Context) (int64, error) {
	return f.counts[model.BuildWaiting], nil
}

func (f *fakeBuildService) CountByStatus(_ context.Context, status model.BuildStatus) (int64, error) {
	return f.counts[status], nil
}

type fakeProjectService struct {
	ProjectService
	byGroup        map[string]*model.Project
	deletedProject *model.Project
}

func (f *fakeProjectService) GetByGroup(_ context.Context, _ uint, name string) (*model.Project, error) {
	if p, ok := f.byGroup[name]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProjectService) DeleteUnsafe(_ context.Context, _ Actor, project *model.Project) error {
	f.deletedProject = project
	return nil
}

type fakeUserService struct {
	UserService
	groupsByAlias map[string][]*model.Group
	memberQueries [][]string
	memberResult  []*model.Group
}

func (f *fakeUserService) GroupsByAlias(_ context.Context, alias string) ([]*model.Group, error) {
	return f.groupsByAlias[alias], nil
}

func (f *fakeUserService) GroupsByNamesWithMember(_ context.Context, names []string, _ string) ([]*model.Group, error) {
	f.memberQueries = append(f.memberQueries, names)
	return f.memberResult, nil
}

func buildWithID(id uint) *model.Build {
	b := &model.Build{Status: model.BuildSucceeded}
	b.ID = id
	return b
}

func groupWithID(id uint, name string) *model.Group {
	g := &model.Group{Name: name}
	g.ID = id
	return g
}

func TestDeleteProjectCascadesBuildsFirst(t *testing.T) {
	builds := &fakeBuildService{builds: []*model.Build{buildWithID(1), buildWithID(2), buildWithID(3)}}
	projects := &fakeProjectService{}
	l := NewComplexLogic(builds, projects, &fakeUserService{})

	project := &model.Project{Name: "rust-tools"}
	project.ID = 7

	err := l.DeleteProject(context.Background(), Actor{ID: 1, Role: model.RoleAdmin}, project)
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2, 3}, builds.deleted)
	require.NotNil(t, projects.deletedProject)
	assert.Equal(t, uint(7), projects.deletedProject.ID)
}

func TestDeleteProjectAbortsOnFirstFailure(t *testing.T) {
	failure := &ActionInProgressError{Action: "running"}
	builds := &fakeBuildService{
		builds:   []*model.Build{buildWithID(1), buildWithID(2), buildWithID(3)},
		failOnID: 2,
		failWith: failure,
	}
	projects := &fakeProjectService{}
	l := NewComplexLogic(builds, projects, &fakeUserService{})

	err := l.DeleteProject(context.Background(), Actor{ID: 1, Role: model.RoleAdmin}, &model.Project{Name: "rust-tools"})

	var inProgress *ActionInProgressError
	require.ErrorAs(t, err, &inProgress)
	// Builds before the failing one stay deleted, the rest and the
	// project itself stay persisted.
	assert.Equal(t, []uint{1}, builds.deleted)
	assert.Nil(t, projects.deletedProject)
}

func TestDeleteProjectPropagatesInsufficientRights(t *testing.T) {
	failure := &InsufficientRightsError{Message: "user bob is not allowed to delete build 1"}
	builds := &fakeBuildService{
		builds:   []*model.Build{buildWithID(1)},
		failOnID: 1,
		failWith: failure,
	}
	projects := &fakeProjectService{}
	l := NewComplexLogic(builds, projects, &fakeUserService{})

	err := l.DeleteProject(context.Background(), Actor{ID: 2, Name: "bob"}, &model.Project{Name: "rust-tools"})

	var noRights *InsufficientRightsError
	require.ErrorAs(t, err, &noRights)
	assert.Nil(t, projects.deletedProject)
}

func TestResolveGroupNotFoundNamesTheGroup(t *testing.T) {
	l := NewComplexLogic(&fakeBuildService{}, &fakeProjectService{}, &fakeUserService{})

	_, err := l.ResolveGroup(context.Background(), "nonexistent")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Message, "nonexistent")
}

func TestResolveGroupAmbiguousAliasIsNotFound(t *testing.T) {
	users := &fakeUserService{groupsByAlias: map[string][]*model.Group{
		"dupes": {groupWithID(1, "dupes"), groupWithID(2, "dupes")},
	}}
	l := NewComplexLogic(&fakeBuildService{}, &fakeProjectService{}, users)

	_, err := l.ResolveGroup(context.Background(), "dupes")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestResolveGroupProject(t *testing.T) {
	users := &fakeUserService{groupsByAlias: map[string][]*model.Group{
		"g": {groupWithID(1, "g")},
	}}
	wanted := &model.Project{Name: "copr-cli"}
	wanted.ID = 3
	projects := &fakeProjectService{byGroup: map[string]*model.Project{"copr-cli": wanted}}
	l := NewComplexLogic(&fakeBuildService{}, projects, users)

	project, err := l.ResolveGroupProject(context.Background(), "g", "copr-cli")
	require.NoError(t, err)
	assert.Equal(t, uint(3), project.ID)

	_, err = l.ResolveGroupProject(context.Background(), "g", "nonexistent-project")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Message, "nonexistent-project")
	assert.False(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestActiveGroupsForUserWithoutTeams(t *testing.T) {
	users := &fakeUserService{memberResult: []*model.Group{groupWithID(1, "g")}}
	l := NewComplexLogic(&fakeBuildService{}, &fakeProjectService{}, users)

	groups, err := l.ActiveGroupsForUser(context.Background(), Actor{ID: 1, Name: "alice"}, "bob")
	require.NoError(t, err)
	assert.Empty(t, groups)
	// No teams means no query at all.
	assert.Empty(t, users.memberQueries)
}

func TestActiveGroupsForUserFiltersByTeams(t *testing.T) {
	users := &fakeUserService{memberResult: []*model.Group{groupWithID(1, "team-a")}}
	l := NewComplexLogic(&fakeBuildService{}, &fakeProjectService{}, users)

	actor := Actor{ID: 1, Name: "alice", Teams: []string{"team-a", "team-b"}}
	groups, err := l.ActiveGroupsForUser(context.Background(), actor, "bob")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "team-a", groups[0].Name)
	require.Len(t, users.memberQueries, 1)
	assert.Equal(t, []string{"team-a", "team-b"}, users.memberQueries[0])
}

func TestQueueSizes(t *testing.T) {
	builds := &fakeBuildService{counts: map[model.BuildStatus]int64{
		model.BuildWaiting:   5,
		model.BuildRunning:   2,
		model.BuildImporting: 1,
	}}
	l := NewComplexLogic(builds, &fakeProjectService{}, &fakeUserService{})

	sizes, err := l.QueueSizes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, QueueSizes{Waiting: 5, Running: 2, Importing: 1}, sizes)
}
