package handlers

import (
	"context"
	"time"

	"github.com/NileMind-Team/pahray-sub001/internal/config"
	"github.com/NileMind-Team/pahray-sub001/internal/queue"
	"github.com/NileMind-Team/pahray-sub001/internal/report"
	"github.com/NileMind-Team/pahray-sub001/internal/upstream"

	"go.uber.org/zap"
)

// ReportArchive is the durable store for generated report artifacts.
// storage.ReportArchive satisfies it.
type ReportArchive interface {
	StoreHTML(ctx context.Context, generatedAt time.Time, document string) (string, error)
	StorePDF(ctx context.Context, generatedAt time.Time, payload []byte) (string, error)
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	PublicURL(key string) string
}

// Handler wires the report controller and the backend client into the admin
// HTTP surface. Archive and Queue are nil when unconfigured.
type Handler struct {
	Reports *report.Controller
	Backend *upstream.Client
	Archive ReportArchive
	Queue   *queue.Client
	Logger  *zap.Logger
	Config  config.Config
}
