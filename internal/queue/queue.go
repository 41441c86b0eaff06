package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// EventsExchange carries admin-side report events for downstream
	// consumers (archival indexers, notification fan-out).
	EventsExchange = "pahray.admin.events"

	ReportGeneratedKey = "report.sales.generated"
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func New(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) EnsureExchange(name string) error {
	return c.ch.ExchangeDeclare(
		name,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}

func (c *Client) PublishJSON(ctx context.Context, exchange, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   time.Now(),
	})
}

// ReportGeneratedEvent announces that a sales report was built and
// archived. Consumers receive the storage location, never the document
// itself.
type ReportGeneratedEvent struct {
	DateRange   string    `json:"dateRange"`
	TotalOrders int       `json:"totalOrders"`
	TotalSales  float64   `json:"totalSales"`
	ArchiveURL  string    `json:"archiveUrl,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

func (c *Client) PublishReportGenerated(ctx context.Context, event ReportGeneratedEvent) error {
	return c.PublishJSON(ctx, EventsExchange, ReportGeneratedKey, event)
}
