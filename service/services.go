// api/service/services.go
package service

import (
	"github.com/projecthub-io/api/cache"
	"github.com/projecthub-io/api/dao"
)

type Services struct {
	Project IProjectService
	Member  IMemberService
}

func InitializeServices(
	projectDAO dao.ProjectDAO,
	memberDAO dao.MemberDAO,
	accessCache *cache.AccessCache,
) *Services {
	return &Services{
		Project: NewProjectService(projectDAO, memberDAO, accessCache),
		Member:  NewMemberService(projectDAO, memberDAO, accessCache),
	}
}
