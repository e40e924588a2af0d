// api/service/member_service.go
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/projecthub-io/api/cache"
	"github.com/projecthub-io/api/dao"
	api_errors "github.com/projecthub-io/api/errors"
	logger "github.com/projecthub-io/api/logging"
	"github.com/projecthub-io/api/model"
)

// IMemberService defines the membership business operations
type IMemberService interface {
	AddMember(ctx context.Context, member model.ProjectMember) (*model.ProjectMember, error)
	UpdateMemberRole(ctx context.Context, projectID, userID, role string) (*model.ProjectMember, error)
	RemoveMember(ctx context.Context, projectID, userID string) error
	ListMembers(ctx context.Context, projectID string) ([]model.ProjectMember, error)
	ListUserProjects(ctx context.Context, userID string) ([]model.CachedProjectAccess, error)
	GetProjectAccess(ctx context.Context, userID, projectID string) (*model.CachedProjectAccess, error)
}

// MemberService handles business logic for project membership. Every
// successful mutation invalidates the affected cache entries synchronously,
// before the HTTP response is written, so stale-read exposure is bounded to
// requests already in flight.
type MemberService struct {
	projectDAO  dao.ProjectDAO
	memberDAO   dao.MemberDAO
	accessCache *cache.AccessCache
}

// NewMemberService creates a new instance of MemberService
func NewMemberService(projectDAO dao.ProjectDAO, memberDAO dao.MemberDAO, accessCache *cache.AccessCache) *MemberService {
	return &MemberService{
		projectDAO:  projectDAO,
		memberDAO:   memberDAO,
		accessCache: accessCache,
	}
}

func (s *MemberService) AddMember(ctx context.Context, member model.ProjectMember) (*model.ProjectMember, error) {
	if !model.IsValidRole(member.Role) {
		return nil, api_errors.ErrInvalidMemberData
	}

	added, err := s.memberDAO.AddMember(ctx, member)
	if err != nil {
		logger.Error("Failed to add member", zap.Error(err),
			zap.String("projectID", member.ProjectID),
			zap.String("userID", member.UserID))
		return nil, err
	}

	s.accessCache.InvalidateProjectAccess(ctx, added.UserID, added.ProjectID)

	logger.Info("Member added",
		zap.String("projectID", added.ProjectID),
		zap.String("userID", added.UserID),
		zap.String("role", added.Role))
	return added, nil
}

func (s *MemberService) UpdateMemberRole(ctx context.Context, projectID, userID, role string) (*model.ProjectMember, error) {
	if !model.IsValidRole(role) {
		return nil, api_errors.ErrInvalidMemberData
	}

	updated, err := s.memberDAO.UpdateMemberRole(ctx, projectID, userID, role)
	if err != nil {
		return nil, err
	}

	s.accessCache.InvalidateProjectAccess(ctx, userID, projectID)

	logger.Info("Member role updated",
		zap.String("projectID", projectID),
		zap.String("userID", userID),
		zap.String("role", role))
	return updated, nil
}

func (s *MemberService) RemoveMember(ctx context.Context, projectID, userID string) error {
	if err := s.memberDAO.RemoveMember(ctx, projectID, userID); err != nil {
		return err
	}

	s.accessCache.InvalidateProjectAccess(ctx, userID, projectID)

	logger.Info("Member removed",
		zap.String("projectID", projectID),
		zap.String("userID", userID))
	return nil
}

func (s *MemberService) ListMembers(ctx context.Context, projectID string) ([]model.ProjectMember, error) {
	return s.memberDAO.ListMembers(ctx, projectID)
}

// ListUserProjects returns the caller's membership set through the cache.
func (s *MemberService) ListUserProjects(ctx context.Context, userID string) ([]model.CachedProjectAccess, error) {
	return s.accessCache.GetUserProjects(ctx, userID, func(ctx context.Context) ([]model.CachedProjectAccess, error) {
		return s.memberDAO.ListProjectsForUser(ctx, userID)
	})
}

// GetProjectAccess resolves the user's role on a project through the cache.
// A nil result with nil error means the user has no membership.
func (s *MemberService) GetProjectAccess(ctx context.Context, userID, projectID string) (*model.CachedProjectAccess, error) {
	return s.accessCache.GetProjectAccess(ctx, userID, projectID, func(ctx context.Context) (*model.CachedProjectAccess, error) {
		return s.fetchProjectAccess(ctx, userID, projectID)
	})
}

func (s *MemberService) fetchProjectAccess(ctx context.Context, userID, projectID string) (*model.CachedProjectAccess, error) {
	member, err := s.memberDAO.GetMember(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, api_errors.ErrMemberNotFound) {
			return nil, nil
		}
		return nil, err
	}

	access := &model.CachedProjectAccess{
		UserID:    userID,
		ProjectID: projectID,
		Role:      member.Role,
	}
	if project, err := s.projectDAO.GetProject(ctx, projectID); err == nil {
		access.ClientName = project.ClientName
		access.Slug = project.Slug
	}
	return access, nil
}
