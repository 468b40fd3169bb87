package reporting

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"salesdash_backend/internal/events"
	apphttp "salesdash_backend/internal/http"
	"salesdash_backend/platform/config"
	"salesdash_backend/platform/logger"
	"salesdash_backend/platform/validator"
)

// Module is the reporting bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates and initializes the reporting module. redisClient may
// be nil, in which case snapshot caching is disabled and every query reads
// from Postgres.
func NewModule(pool *pgxpool.Pool, redisClient *redis.Client, cfg interface {
	config.SyncConfig
	config.CacheConfig
}, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(pool, cfg.GetSyncTable())
	snapshot := NewSnapshot(redisClient, cfg.GetSyncTable(), cfg.GetSnapshotTTL(), log)
	service := NewService(repo, snapshot, log, cfg.GetFollowUpDateColumns())
	service.SubscribeInvalidation(eventBus)
	handler := NewHandler(service, val)

	return &Module{
		handler: handler,
		service: service,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "reporting"
}

// RegisterRoutes mounts reporting routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/reports")
	group.GET("/records", m.handler.HandleRecords)
	group.GET("/summary", m.handler.HandleSummary)
	group.GET("/agents", m.handler.HandleAgents)
	group.GET("/countries", m.handler.HandleCountries)
	group.GET("/outcomes", m.handler.HandleOutcomes)
	group.GET("/issues", m.handler.HandleIssues)
	group.GET("/filters", m.handler.HandleFilters)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
