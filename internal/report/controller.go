package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/NileMind-Team/pahray-sub001/internal/model"

	"go.uber.org/zap"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// OrderSource is the upstream ordering backend seen from the report engine:
// a date-filtered list query and a single-order detail query.
type OrderSource interface {
	ListOrders(ctx context.Context, start, end time.Time) ([]model.OrderRecord, error)
	OrderByID(ctx context.Context, id string) (*model.OrderRecord, error)
}

type UserSource interface {
	ListUsers(ctx context.Context) ([]model.User, error)
}

// PrintSink receives a complete document and runs the platform print flow.
// Print returns once the sink has accepted or rejected the document.
type PrintSink interface {
	Print(ctx context.Context, document string) error
}

// Snapshot is the read-only view handed to the HTTP layer. Orders is a
// fresh copy on every call; mutating it cannot reach controller state.
type Snapshot struct {
	State     State               `json:"state"`
	Orders    []model.OrderRecord `json:"orders"`
	Summary   Summary             `json:"summary"`
	LastError string              `json:"lastError,omitempty"`
}

// Controller orchestrates report generation: it validates date bounds,
// fetches the matching orders, derives the summary, and dispatches the
// printable document on demand. A request-generation token keeps a stale
// in-flight fetch from overwriting fresher results.
type Controller struct {
	orders  OrderSource
	users   UserSource
	sink    PrintSink
	builder *DocumentBuilder
	log     *zap.Logger

	mu            sync.Mutex
	state         State
	generation    uint64
	applied       uint64
	snapshot      []model.OrderRecord
	summary       Summary
	lastErr       error
	userCache     []model.User
	printing      bool
	detailToken   uint64
	detailApplied uint64
	activeDetail  *model.OrderRecord

	usersLoaded chan struct{}
}

func NewController(orders OrderSource, users UserSource, sink PrintSink, builder *DocumentBuilder, log *zap.Logger) *Controller {
	c := &Controller{
		orders:      orders,
		users:       users,
		sink:        sink,
		builder:     builder,
		log:         log,
		state:       StateIdle,
		summary:     Summarize(nil, nil, nil),
		usersLoaded: make(chan struct{}),
	}

	// The user list loads once, overlapping any report fetches. Failure
	// degrades name resolution to truncated ids and never blocks reports.
	go c.loadUsers()

	return c
}

func (c *Controller) loadUsers() {
	defer close(c.usersLoaded)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	list, err := c.users.ListUsers(ctx)
	if err != nil {
		c.log.Warn("user list fetch failed; falling back to truncated ids", zap.Error(err))
		return
	}

	c.mu.Lock()
	c.userCache = list
	c.mu.Unlock()
}

// RequestReport validates the bounds, fetches matching orders from the
// order source, and recomputes the summary. Validation failures return
// synchronously with no fetch issued.
func (c *Controller) RequestReport(ctx context.Context, start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrMissingDateBound
	}
	if start.After(end) {
		return ErrInvalidDateRange
	}

	c.mu.Lock()
	c.generation++
	token := c.generation
	c.state = StateLoading
	c.mu.Unlock()

	orders, err := c.orders.ListOrders(ctx, start, end)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token <= c.applied {
		// a newer request already completed; discard this result
		return nil
	}
	c.applied = token

	if err != nil {
		c.state = StateFailed
		c.lastErr = err
		c.log.Error("report fetch failed", zap.Error(err))
		return fmt.Errorf("fetch report orders: %w", err)
	}

	c.snapshot = orders
	c.summary = Summarize(orders, &start, &end)
	c.state = StateReady
	c.lastErr = nil
	return nil
}

// OrderDetails fetches one order's full detail, independent of the list
// snapshot. Overlapping detail fetches are allowed; the most recently
// requested one that completes wins the active slot.
func (c *Controller) OrderDetails(ctx context.Context, id string) (*model.OrderRecord, error) {
	c.mu.Lock()
	c.detailToken++
	token := c.detailToken
	c.mu.Unlock()

	detail, err := c.orders.OrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch order %s: %w", id, err)
	}

	c.mu.Lock()
	if token > c.detailApplied {
		c.detailApplied = token
		c.activeDetail = detail
	}
	c.mu.Unlock()

	return detail, nil
}

// ActiveDetail returns the detail record of the last completed winning
// detail fetch, or nil.
func (c *Controller) ActiveDetail() *model.OrderRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeDetail == nil {
		return nil
	}
	copied := *c.activeDetail
	return &copied
}

// PrintReport builds the current document and hands it to the print sink.
// An empty snapshot is a validation warning with no sink call; a second
// invocation while one is in flight is rejected, not queued. The busy flag
// is released on every exit path.
func (c *Controller) PrintReport(ctx context.Context) error {
	c.mu.Lock()
	if c.printing {
		c.mu.Unlock()
		return ErrPrintBusy
	}
	if len(c.snapshot) == 0 {
		c.mu.Unlock()
		return ErrNoOrders
	}
	c.printing = true
	orders := make([]model.OrderRecord, len(c.snapshot))
	copy(orders, c.snapshot)
	summary := c.summary
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.printing = false
		c.mu.Unlock()
	}()

	document, err := c.builder.BuildDocument(orders, summary, time.Now(), c.ResolveUserName)
	if err != nil {
		return err
	}
	if err := c.sink.Print(ctx, document); err != nil {
		c.log.Error("print sink failed", zap.Error(err))
		return fmt.Errorf("print report: %w", err)
	}
	return nil
}

// Document renders the current snapshot as the standalone HTML artifact.
func (c *Controller) Document(generatedAt time.Time) (string, error) {
	c.mu.Lock()
	orders := make([]model.OrderRecord, len(c.snapshot))
	copy(orders, c.snapshot)
	summary := c.summary
	c.mu.Unlock()

	return c.builder.BuildDocument(orders, summary, generatedAt, c.ResolveUserName)
}

// PDF renders the current snapshot with the PDF builder.
func (c *Controller) PDF(generatedAt time.Time) ([]byte, error) {
	c.mu.Lock()
	orders := make([]model.OrderRecord, len(c.snapshot))
	copy(orders, c.snapshot)
	summary := c.summary
	c.mu.Unlock()

	return c.builder.BuildPDF(orders, summary, generatedAt, c.ResolveUserName)
}

// ResolveUserName maps a user id to a display name via the cached user
// list. Unknown ids, or a cache that never loaded, fall back to a
// truncated id so rendering never blocks on the user source.
func (c *Controller) ResolveUserName(userID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.userCache {
		if c.userCache[i].ID == userID {
			return c.userCache[i].FirstName + " " + c.userCache[i].LastName
		}
	}
	if len(userID) > 8 {
		return userID[:8]
	}
	return userID
}

// Snapshot exposes a read-only copy of the controller state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := Snapshot{
		State:   c.state,
		Orders:  make([]model.OrderRecord, len(c.snapshot)),
		Summary: c.summary,
	}
	copy(out.Orders, c.snapshot)
	if c.lastErr != nil {
		out.LastError = c.lastErr.Error()
	}
	return out
}
