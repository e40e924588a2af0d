// api/service/project_service.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/projecthub-io/api/cache"
	"github.com/projecthub-io/api/dao"
	api_errors "github.com/projecthub-io/api/errors"
	logger "github.com/projecthub-io/api/logging"
	"github.com/projecthub-io/api/model"
)

// IProjectService defines the project business operations
type IProjectService interface {
	CreateProject(ctx context.Context, project model.Project, creatorID string) (*model.Project, error)
	GetProject(ctx context.Context, projectID string) (*model.Project, error)
	GetProjectDetails(ctx context.Context, projectID string) (*ProjectDetails, error)
	UpdateProject(ctx context.Context, project model.Project) (*model.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
}

// ProjectDetails bundles a project with its membership list.
type ProjectDetails struct {
	Project *model.Project        `json:"project"`
	Members []model.ProjectMember `json:"members"`
}

// ProjectService handles business logic for project operations
type ProjectService struct {
	projectDAO  dao.ProjectDAO
	memberDAO   dao.MemberDAO
	accessCache *cache.AccessCache
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(projectDAO dao.ProjectDAO, memberDAO dao.MemberDAO, accessCache *cache.AccessCache) *ProjectService {
	return &ProjectService{
		projectDAO:  projectDAO,
		memberDAO:   memberDAO,
		accessCache: accessCache,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, project model.Project, creatorID string) (*model.Project, error) {
	if project.Name == "" || project.Slug == "" {
		return nil, api_errors.ErrInvalidProjectData
	}
	project.ID = uuid.NewString()
	project.Slug = strings.ToLower(project.Slug)
	project.OwnerID = creatorID

	created, err := s.projectDAO.CreateProject(ctx, project)
	if err != nil {
		logger.Error("Failed to create project", zap.Error(err), zap.String("slug", project.Slug))
		return nil, err
	}

	// The creator gained an owner membership, so their cached list is stale.
	s.accessCache.InvalidateUserProjects(ctx, creatorID)

	logger.Info("Project created",
		zap.String("projectID", created.ID),
		zap.String("ownerID", creatorID))
	return created, nil
}

func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	return s.projectDAO.GetProject(ctx, projectID)
}

// GetProjectDetails fetches the project and its member list concurrently.
func (s *ProjectService) GetProjectDetails(ctx context.Context, projectID string) (*ProjectDetails, error) {
	var details ProjectDetails
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		project, err := s.projectDAO.GetProject(gctx, projectID)
		if err != nil {
			return err
		}
		details.Project = project
		return nil
	})
	g.Go(func() error {
		members, err := s.memberDAO.ListMembers(gctx, projectID)
		if err != nil {
			return err
		}
		details.Members = members
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &details, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, project model.Project) (*model.Project, error) {
	if project.Name == "" || project.Slug == "" {
		return nil, api_errors.ErrInvalidProjectData
	}
	project.Slug = strings.ToLower(project.Slug)

	updated, err := s.projectDAO.UpdateProject(ctx, project)
	if err != nil {
		return nil, err
	}

	// Cached access records carry the project's slug and client name, so a
	// project update has to flush them all.
	s.accessCache.InvalidateProject(ctx, updated.ID)

	logger.Info("Project updated", zap.String("projectID", updated.ID))
	return updated, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	if err := s.projectDAO.DeleteProject(ctx, projectID); err != nil {
		return err
	}

	s.accessCache.InvalidateProject(ctx, projectID)

	logger.Info("Project deleted", zap.String("projectID", projectID))
	return nil
}
