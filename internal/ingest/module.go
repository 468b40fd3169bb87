package ingest

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"salesdash_backend/internal/events"
	apphttp "salesdash_backend/internal/http"
	"salesdash_backend/internal/records"
	"salesdash_backend/internal/source"
	"salesdash_backend/platform/config"
	"salesdash_backend/platform/logger"
)

// Module is the synchronization bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
	trigger config.TriggerConfig
}

// NewModule creates and initializes the ingest module with all its
// dependencies. enqueuer may be nil; the trigger then runs passes inline.
func NewModule(pool *pgxpool.Pool, src source.Source, cfg interface {
	config.TriggerConfig
	config.SyncConfig
}, eventBus events.Bus, enqueuer Enqueuer, log *logger.Logger) *Module {
	repo := NewRepository(pool, cfg.GetSyncTable())
	builder := records.NewBuilder(records.BuilderOptions{
		FollowUpDateColumns: cfg.GetFollowUpDateColumns(),
		PhoneRegion:         cfg.GetPhoneRegion(),
	})
	service := NewService(src, repo, builder, eventBus, log, cfg.GetSyncTable())
	handler := NewHandler(service, enqueuer)

	return &Module{
		handler: handler,
		service: service,
		trigger: cfg,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "ingest"
}

// Service exposes the sync service for non-HTTP callers (scheduler, one-shot CLI).
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts ingest routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Shared-secret auth, no user accounts. The trigger is called by the
	// spreadsheet's edit hook, not by browsers.
	group := ctx.V1.Group("/sync")
	group.Use(ctx.TriggerRateLimiter.RateLimit())
	group.Use(SecretKeyAuthMiddleware(m.trigger))
	group.POST("", m.handler.HandleTriggerSync)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
