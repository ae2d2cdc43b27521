package providers

import (
	"github.com/samber/do/v2"

	"github.com/trackstash/trackstash-server/internal/logger"
	"github.com/trackstash/trackstash-server/internal/service"
)

// ProvideResourceService provides the resource service.
func ProvideResourceService(i do.Injector) (*service.ResourceService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewResourceService(storeHandle.Store, log.Logger), nil
}
