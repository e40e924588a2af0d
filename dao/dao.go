// api/dao/dao.go
package dao

import (
	"context"

	"github.com/projecthub-io/api/model"
)

// ProjectDAO is the source-of-truth access layer for projects. The cache
// layer never queries the store itself; it only sees these through the
// fallback callbacks supplied per call site.
type ProjectDAO interface {
	CreateProject(ctx context.Context, project model.Project) (*model.Project, error)
	GetProject(ctx context.Context, projectID string) (*model.Project, error)
	UpdateProject(ctx context.Context, project model.Project) (*model.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
}

// MemberDAO is the source-of-truth access layer for project membership.
type MemberDAO interface {
	AddMember(ctx context.Context, member model.ProjectMember) (*model.ProjectMember, error)
	GetMember(ctx context.Context, projectID, userID string) (*model.ProjectMember, error)
	UpdateMemberRole(ctx context.Context, projectID, userID, role string) (*model.ProjectMember, error)
	RemoveMember(ctx context.Context, projectID, userID string) error
	ListMembers(ctx context.Context, projectID string) ([]model.ProjectMember, error)
	ListProjectsForUser(ctx context.Context, userID string) ([]model.CachedProjectAccess, error)
}
