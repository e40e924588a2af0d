// api/dao/memory_dao.go
package dao

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	api_errors "github.com/projecthub-io/api/errors"
	logger "github.com/projecthub-io/api/logging"
	"github.com/projecthub-io/api/model"
)

// MemoryStore is an in-memory implementation of ProjectDAO and MemberDAO
// used for development and tests. The production document store sits behind
// the same interfaces.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]model.Project
	// members is keyed by projectID, then userID.
	members map[string]map[string]model.ProjectMember
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[string]model.Project),
		members:  make(map[string]map[string]model.ProjectMember),
	}
}

func (s *MemoryStore) CreateProject(ctx context.Context, project model.Project) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.projects[project.ID]; exists {
		return nil, api_errors.ErrProjectConflict
	}
	for _, existing := range s.projects {
		if existing.Slug == project.Slug {
			return nil, api_errors.ErrProjectConflict
		}
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now
	s.projects[project.ID] = project

	// The creator is always an owner member.
	if project.OwnerID != "" {
		s.members[project.ID] = map[string]model.ProjectMember{
			project.OwnerID: {
				UserID:    project.OwnerID,
				ProjectID: project.ID,
				Role:      model.RoleOwner,
				AddedAt:   now,
				UpdatedAt: now,
			},
		}
	}
	logger.Debug("Project created", zap.String("projectID", project.ID))
	return &project, nil
}

func (s *MemoryStore) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[projectID]
	if !ok {
		return nil, api_errors.ErrProjectNotFound
	}
	return &project, nil
}

func (s *MemoryStore) UpdateProject(ctx context.Context, project model.Project) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.projects[project.ID]
	if !ok {
		return nil, api_errors.ErrProjectNotFound
	}
	project.CreatedAt = existing.CreatedAt
	project.OwnerID = existing.OwnerID
	project.UpdatedAt = time.Now().UTC()
	s.projects[project.ID] = project
	logger.Debug("Project updated", zap.String("projectID", project.ID))
	return &project, nil
}

func (s *MemoryStore) DeleteProject(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[projectID]; !ok {
		return api_errors.ErrProjectNotFound
	}
	delete(s.projects, projectID)
	delete(s.members, projectID)
	logger.Debug("Project deleted", zap.String("projectID", projectID))
	return nil
}

func (s *MemoryStore) AddMember(ctx context.Context, member model.ProjectMember) (*model.ProjectMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[member.ProjectID]; !ok {
		return nil, api_errors.ErrProjectNotFound
	}
	projectMembers, ok := s.members[member.ProjectID]
	if !ok {
		projectMembers = make(map[string]model.ProjectMember)
		s.members[member.ProjectID] = projectMembers
	}
	if _, exists := projectMembers[member.UserID]; exists {
		return nil, api_errors.ErrMemberConflict
	}
	now := time.Now().UTC()
	member.AddedAt = now
	member.UpdatedAt = now
	projectMembers[member.UserID] = member
	logger.Debug("Member added",
		zap.String("projectID", member.ProjectID),
		zap.String("userID", member.UserID),
		zap.String("role", member.Role))
	return &member, nil
}

func (s *MemoryStore) GetMember(ctx context.Context, projectID, userID string) (*model.ProjectMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[projectID][userID]
	if !ok {
		return nil, api_errors.ErrMemberNotFound
	}
	return &member, nil
}

func (s *MemoryStore) UpdateMemberRole(ctx context.Context, projectID, userID, role string) (*model.ProjectMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	member, ok := s.members[projectID][userID]
	if !ok {
		return nil, api_errors.ErrMemberNotFound
	}
	member.Role = role
	member.UpdatedAt = time.Now().UTC()
	s.members[projectID][userID] = member
	logger.Debug("Member role updated",
		zap.String("projectID", projectID),
		zap.String("userID", userID),
		zap.String("role", role))
	return &member, nil
}

func (s *MemoryStore) RemoveMember(ctx context.Context, projectID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[projectID][userID]; !ok {
		return api_errors.ErrMemberNotFound
	}
	delete(s.members[projectID], userID)
	logger.Debug("Member removed",
		zap.String("projectID", projectID),
		zap.String("userID", userID))
	return nil
}

func (s *MemoryStore) ListMembers(ctx context.Context, projectID string) ([]model.ProjectMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.projects[projectID]; !ok {
		return nil, api_errors.ErrProjectNotFound
	}
	members := make([]model.ProjectMember, 0, len(s.members[projectID]))
	for _, member := range s.members[projectID] {
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].UserID < members[j].UserID })
	return members, nil
}

func (s *MemoryStore) ListProjectsForUser(ctx context.Context, userID string) ([]model.CachedProjectAccess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var accesses []model.CachedProjectAccess
	for projectID, projectMembers := range s.members {
		member, ok := projectMembers[userID]
		if !ok {
			continue
		}
		project := s.projects[projectID]
		accesses = append(accesses, model.CachedProjectAccess{
			UserID:     userID,
			ProjectID:  projectID,
			Role:       member.Role,
			ClientName: project.ClientName,
			Slug:       project.Slug,
			CachedAt:   time.Now().UTC(),
		})
	}
	sort.Slice(accesses, func(i, j int) bool { return accesses[i].ProjectID < accesses[j].ProjectID })
	return accesses, nil
}
