// api/middleware/project_access_test.go
package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/projecthub-io/api/middleware"
	"github.com/projecthub-io/api/model"
)

// fakeMemberService satisfies service.IMemberService with canned access
// answers keyed by userID.
type fakeMemberService struct {
	roles map[string]string
	err   error
}

func (f *fakeMemberService) AddMember(ctx context.Context, member model.ProjectMember) (*model.ProjectMember, error) {
	return nil, nil
}

func (f *fakeMemberService) UpdateMemberRole(ctx context.Context, projectID, userID, role string) (*model.ProjectMember, error) {
	return nil, nil
}

func (f *fakeMemberService) RemoveMember(ctx context.Context, projectID, userID string) error {
	return nil
}

func (f *fakeMemberService) ListMembers(ctx context.Context, projectID string) ([]model.ProjectMember, error) {
	return nil, nil
}

func (f *fakeMemberService) ListUserProjects(ctx context.Context, userID string) ([]model.CachedProjectAccess, error) {
	return nil, nil
}

func (f *fakeMemberService) GetProjectAccess(ctx context.Context, userID, projectID string) (*model.CachedProjectAccess, error) {
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.roles[userID]
	if !ok {
		return nil, nil
	}
	return &model.CachedProjectAccess{UserID: userID, ProjectID: projectID, Role: role}, nil
}

func accessTestRouter(svc *fakeMemberService, requiredRole, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	})
	r.GET("/projects/:id", middleware.RequireProjectRole(svc, requiredRole), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doAccessRequest(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/projects/p1", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRequireProjectRoleAllowsSufficientRole(t *testing.T) {
	svc := &fakeMemberService{roles: map[string]string{"u1": model.RoleEditor}}
	w := doAccessRequest(accessTestRouter(svc, model.RoleViewer, "u1"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireProjectRoleAllowsExactRole(t *testing.T) {
	svc := &fakeMemberService{roles: map[string]string{"u1": model.RoleOwner}}
	w := doAccessRequest(accessTestRouter(svc, model.RoleOwner, "u1"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireProjectRoleRejectsInsufficientRole(t *testing.T) {
	svc := &fakeMemberService{roles: map[string]string{"u1": model.RoleViewer}}
	w := doAccessRequest(accessTestRouter(svc, model.RoleOwner, "u1"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireProjectRoleRejectsNonMember(t *testing.T) {
	svc := &fakeMemberService{roles: map[string]string{}}
	w := doAccessRequest(accessTestRouter(svc, model.RoleViewer, "u1"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireProjectRoleRejectsUnauthenticated(t *testing.T) {
	svc := &fakeMemberService{roles: map[string]string{"u1": model.RoleOwner}}
	w := doAccessRequest(accessTestRouter(svc, model.RoleViewer, ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireProjectRoleSurfacesLookupFailure(t *testing.T) {
	svc := &fakeMemberService{err: errors.New("store down")}
	w := doAccessRequest(accessTestRouter(svc, model.RoleViewer, "u1"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
