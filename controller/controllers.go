// api/controller/controllers.go
package controller

import (
	"github.com/projecthub-io/api/cache"
	"github.com/projecthub-io/api/service"
)

type Controllers struct {
	Project *ProjectController
	Member  *MemberController
	Cache   *CacheController
}

func InitializeControllers(services *service.Services, accessCache *cache.AccessCache) *Controllers {
	return &Controllers{
		Project: NewProjectController(services.Project, services.Member),
		Member:  NewMemberController(services.Member),
		Cache:   NewCacheController(accessCache),
	}
}
