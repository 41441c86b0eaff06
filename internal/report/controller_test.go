package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/NileMind-Team/pahray-sub001/internal/model"

	"go.uber.org/zap"
)

type fakeOrderSource struct {
	mu        sync.Mutex
	listCalls int
	listFn    func(ctx context.Context, start, end time.Time) ([]model.OrderRecord, error)
	byIDFn    func(ctx context.Context, id string) (*model.OrderRecord, error)
}

func (f *fakeOrderSource) ListOrders(ctx context.Context, start, end time.Time) ([]model.OrderRecord, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, start, end)
}

func (f *fakeOrderSource) OrderByID(ctx context.Context, id string) (*model.OrderRecord, error) {
	if f.byIDFn == nil {
		return &model.OrderRecord{ID: id}, nil
	}
	return f.byIDFn(ctx, id)
}

func (f *fakeOrderSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

type fakeUserSource struct {
	users []model.User
	err   error
}

func (f *fakeUserSource) ListUsers(ctx context.Context) ([]model.User, error) {
	return f.users, f.err
}

type fakeSink struct {
	mu     sync.Mutex
	calls  int
	err    error
	gate   chan struct{}
	lastIn string
}

func (f *fakeSink) Print(ctx context.Context, document string) error {
	f.mu.Lock()
	f.calls++
	f.lastIn = document
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	return f.err
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestController(orders *fakeOrderSource, users *fakeUserSource, sink *fakeSink) *Controller {
	if users == nil {
		users = &fakeUserSource{}
	}
	if sink == nil {
		sink = &fakeSink{}
	}
	c := NewController(orders, users, sink, &DocumentBuilder{}, zap.NewNop())
	<-c.usersLoaded
	return c
}

func TestRequestReportValidation(t *testing.T) {
	source := &fakeOrderSource{}
	c := newTestController(source, nil, nil)

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected error
	}{
		{name: "missing start", end: day, expected: ErrMissingDateBound},
		{name: "missing end", start: day, expected: ErrMissingDateBound},
		{name: "inverted range", start: day.AddDate(0, 0, 5), end: day, expected: ErrInvalidDateRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := c.RequestReport(context.Background(), tc.start, tc.end); !errors.Is(err, tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, err)
			}
		})
	}

	if source.calls() != 0 {
		t.Fatalf("validation errors must not reach the order source, got %d calls", source.calls())
	}
	if got := c.Snapshot().State; got != StateIdle {
		t.Fatalf("expected idle state after rejected requests, got %s", got)
	}
}

func TestRequestReportSuccess(t *testing.T) {
	source := &fakeOrderSource{
		listFn: func(ctx context.Context, start, end time.Time) ([]model.OrderRecord, error) {
			return []model.OrderRecord{
				{OrderNumber: "1", TotalWithFee: f64(100), DeliveryFee: &model.DeliveryFee{Fee: 10}},
				{OrderNumber: "2", TotalWithFee: f64(50)},
			}, nil
		},
	}
	c := newTestController(source, nil, nil)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	if err := c.RequestReport(context.Background(), start, end); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := c.Snapshot()
	if snap.State != StateReady {
		t.Fatalf("expected ready, got %s", snap.State)
	}
	if snap.Summary.TotalSales != 150 || snap.Summary.TotalOrders != 2 ||
		snap.Summary.DeliveryOrders != 1 || snap.Summary.PickupOrders != 1 {
		t.Fatalf("unexpected summary %+v", snap.Summary)
	}
	if len(snap.Orders) != 2 {
		t.Fatalf("expected 2 orders in snapshot, got %d", len(snap.Orders))
	}
}

func TestRequestReportFailureKeepsLastSnapshot(t *testing.T) {
	failing := false
	source := &fakeOrderSource{}
	source.listFn = func(ctx context.Context, start, end time.Time) ([]model.OrderRecord, error) {
		if failing {
			return nil, errors.New("backend unreachable")
		}
		return []model.OrderRecord{{OrderNumber: "1", TotalWithFee: f64(75)}}, nil
	}
	c := newTestController(source, nil, nil)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	if err := c.RequestReport(context.Background(), start, end); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}

	failing = true
	if err := c.RequestReport(context.Background(), start, end); err == nil {
		t.Fatalf("expected fetch error")
	}

	snap := c.Snapshot()
	if snap.State != StateFailed {
		t.Fatalf("expected failed state, got %s", snap.State)
	}
	if snap.LastError == "" {
		t.Fatalf("expected last error to be surfaced")
	}
	if len(snap.Orders) != 1 {
		t.Fatalf("previous snapshot should survive a failed fetch, got %d orders", len(snap.Orders))
	}
}

func TestStaleFetchIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	source := &fakeOrderSource{}
	source.listFn = func(ctx context.Context, start, end time.Time) ([]model.OrderRecord, error) {
		// the first request parks until released; later ones return at once
		if source.calls() == 1 {
			close(started)
			<-release
			return []model.OrderRecord{{OrderNumber: "stale", TotalWithFee: f64(1)}}, nil
		}
		return []model.OrderRecord{{OrderNumber: "fresh", TotalWithFee: f64(999)}}, nil
	}
	c := newTestController(source, nil, nil)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	done := make(chan error, 1)
	go func() {
		done <- c.RequestReport(context.Background(), start, end)
	}()
	<-started

	if err := c.RequestReport(context.Background(), start, end); err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first fetch returned error: %v", err)
	}

	snap := c.Snapshot()
	if len(snap.Orders) != 1 || snap.Orders[0].OrderNumber != "fresh" {
		t.Fatalf("stale fetch overwrote fresher result: %+v", snap.Orders)
	}
	if snap.Summary.TotalSales != 999 {
		t.Fatalf("summary belongs to stale fetch: %+v", snap.Summary)
	}
}

func TestPrintReportEmptySnapshot(t *testing.T) {
	sink := &fakeSink{}
	c := newTestController(&fakeOrderSource{}, nil, sink)

	if err := c.PrintReport(context.Background()); !errors.Is(err, ErrNoOrders) {
		t.Fatalf("expected ErrNoOrders, got %v", err)
	}
	if sink.count() != 0 {
		t.Fatalf("sink must not be called for an empty snapshot")
	}
}

func loadOneOrder(t *testing.T, c *Controller) {
	t.Helper()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := c.RequestReport(context.Background(), start, start.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}
}

func TestPrintReportBusyGuard(t *testing.T) {
	sink := &fakeSink{gate: make(chan struct{})}
	source := &fakeOrderSource{
		listFn: func(ctx context.Context, start, end time.Time) ([]model.OrderRecord, error) {
			return []model.OrderRecord{{OrderNumber: "1", TotalWithFee: f64(10)}}, nil
		},
	}
	c := newTestController(source, nil, sink)
	loadOneOrder(t, c)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- c.PrintReport(context.Background())
	}()

	// wait for the first print to reach the sink
	for i := 0; sink.count() == 0 && i < 100; i++ {
		time.Sleep(5 * time.Millisecond)
	}
	if sink.count() != 1 {
		t.Fatalf("first print never reached the sink")
	}

	if err := c.PrintReport(context.Background()); !errors.Is(err, ErrPrintBusy) {
		t.Fatalf("expected ErrPrintBusy, got %v", err)
	}

	close(sink.gate)
	if err := <-firstDone; err != nil {
		t.Fatalf("first print failed: %v", err)
	}

	// busy flag released; printing works again
	sink.gate = nil
	if err := c.PrintReport(context.Background()); err != nil {
		t.Fatalf("print after release failed: %v", err)
	}
}

func TestPrintReportSinkFailureReleasesBusyFlag(t *testing.T) {
	sink := &fakeSink{err: errors.New("printer offline")}
	source := &fakeOrderSource{
		listFn: func(ctx context.Context, start, end time.Time) ([]model.OrderRecord, error) {
			return []model.OrderRecord{{OrderNumber: "1", TotalWithFee: f64(10)}}, nil
		},
	}
	c := newTestController(source, nil, sink)
	loadOneOrder(t, c)

	if err := c.PrintReport(context.Background()); err == nil {
		t.Fatalf("expected sink failure")
	}

	sink.err = nil
	if err := c.PrintReport(context.Background()); err != nil {
		t.Fatalf("busy flag not released after failure: %v", err)
	}
	if sink.lastIn == "" {
		t.Fatalf("expected document payload at the sink")
	}
}

func TestResolveUserName(t *testing.T) {
	users := &fakeUserSource{users: []model.User{
		{ID: "u-1", FirstName: "محمد", LastName: "حسن"},
	}}
	c := newTestController(&fakeOrderSource{}, users, nil)

	if got := c.ResolveUserName("u-1"); got != "محمد حسن" {
		t.Fatalf("expected resolved name, got %q", got)
	}
	if got := c.ResolveUserName("deadbeef-cafe-0001"); got != "deadbeef" {
		t.Fatalf("expected truncated fallback, got %q", got)
	}
	if got := c.ResolveUserName("short"); got != "short" {
		t.Fatalf("short ids pass through, got %q", got)
	}
}

func TestResolveUserNameDegradesWhenUserFetchFails(t *testing.T) {
	users := &fakeUserSource{err: errors.New("users endpoint down")}
	c := newTestController(&fakeOrderSource{}, users, nil)

	if got := c.ResolveUserName("abcdefgh-1234"); got != "abcdefgh" {
		t.Fatalf("expected truncated fallback, got %q", got)
	}
}

func TestOrderDetails(t *testing.T) {
	source := &fakeOrderSource{
		byIDFn: func(ctx context.Context, id string) (*model.OrderRecord, error) {
			return &model.OrderRecord{ID: id, OrderNumber: "42", Notes: strp("بدون بصل")}, nil
		},
	}
	c := newTestController(source, nil, nil)

	detail, err := c.OrderDetails(context.Background(), "ord-42")
	if err != nil {
		t.Fatalf("detail fetch failed: %v", err)
	}
	if detail.OrderNumber != "42" {
		t.Fatalf("unexpected detail %+v", detail)
	}

	active := c.ActiveDetail()
	if active == nil || active.ID != "ord-42" {
		t.Fatalf("expected active detail to be stored")
	}
}
