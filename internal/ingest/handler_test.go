package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"salesdash_backend/internal/records"
)

type fakeEnqueuer struct {
	triggers []string
	err      error
}

func (f *fakeEnqueuer) EnqueueSyncRun(_ context.Context, trigger string) error {
	if f.err != nil {
		return f.err
	}
	f.triggers = append(f.triggers, trigger)
	return nil
}

func newTriggerRouter(svc *Service, enqueuer Enqueuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/api/v1/sync", NewHandler(svc, enqueuer).HandleTriggerSync)
	return engine
}

func TestHandleTriggerSyncQueuesWhenEnqueuerConfigured(t *testing.T) {
	svc, _ := newTestService(&fakeSource{}, &fakeStore{})
	enqueuer := &fakeEnqueuer{}
	engine := newTriggerRouter(svc, enqueuer)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(enqueuer.triggers) != 1 || enqueuer.triggers[0] != "manual" {
		t.Fatalf("enqueued = %v", enqueuer.triggers)
	}
}

func TestHandleTriggerSyncRunsInlineWithoutEnqueuer(t *testing.T) {
	src := &fakeSource{rows: []records.SourceRow{{"Email": "a@example.com"}}}
	store := &fakeStore{}
	svc, _ := newTestService(src, store)
	engine := newTriggerRouter(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(store.replaced) != 1 {
		t.Fatalf("store received %v", store.replaced)
	}
}
