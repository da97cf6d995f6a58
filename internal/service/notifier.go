package service

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventBatchCompleted is the event type sent after every settled batch.
const EventBatchCompleted = "batch.completed"

// Notifier posts batch summaries to a downstream URL. A nil *Notifier is
// valid and sends nothing.
type Notifier struct {
	url    string
	client *http.Client
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewNotifier creates a Notifier for url. It returns nil when url is empty.
func NewNotifier(url string, timeout time.Duration, logger *slog.Logger) *Notifier {
	if url == "" {
		return nil
	}
	return &Notifier{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// batchPayload is the JSON payload for batch.completed notifications.
type batchPayload struct {
	Event     string    `json:"event"`
	Timestamp string    `json:"timestamp"`
	Data      batchData `json:"data"`
}

type batchData struct {
	BatchID   string `json:"batch_id"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
}

// BatchCompleted dispatches a batch.completed notification. Fire-and-forget:
// delivery errors are logged and dropped.
func (n *Notifier) BatchCompleted(r *BatchResult) {
	if n == nil {
		return
	}

	payload := batchPayload{
		Event:     EventBatchCompleted,
		Timestamp: time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		Data: batchData{
			BatchID:   r.BatchID,
			Total:     r.Total,
			Processed: r.Processed,
			Failed:    r.Failed,
		},
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.deliver(EventBatchCompleted, payload)
	}()
}

// Wait blocks until in-flight deliveries finish.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}

// deliver sends the payload via HTTP POST with the delivery headers.
func (n *Notifier) deliver(eventType string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("notification request", slog.String("error", err.Error()))
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", uuid.New().String())
	req.Header.Set("X-Event-Type", eventType)

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("notification delivery failed", slog.String("error", err.Error()))
		return
	}
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.logger.Warn("notification rejected",
			slog.String("event", eventType),
			slog.Int("status", resp.StatusCode),
		)
	}
}
