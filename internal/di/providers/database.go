package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/trackstash/trackstash-server/internal/config"
	"github.com/trackstash/trackstash-server/internal/logger"
	"github.com/trackstash/trackstash-server/internal/store"
	"github.com/trackstash/trackstash-server/internal/store/badger"
	"github.com/trackstash/trackstash-server/internal/store/memory"
)

// StoreHandle wraps the resource store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the resource store selected by configuration.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Store.Backend {
	case "badger":
		db, err := badger.New(cfg.Store.DataPath, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "path", cfg.Store.DataPath)
		return &StoreHandle{Store: db}, nil

	case "memory":
		log.Info("Using in-memory resource store; data will not survive restarts")
		return &StoreHandle{Store: memory.New()}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
