package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jishnuMgit/hoardlinks-backend/pkg/queue"
)

// PushSender delivers one push notification to a device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string) error
}

// FCMSender posts notifications to the FCM legacy HTTP endpoint.
type FCMSender struct {
	endpoint  string
	serverKey string
	client    *http.Client
}

// NewFCMSender creates an FCM sender.
func NewFCMSender(endpoint, serverKey string) *FCMSender {
	return &FCMSender{
		endpoint:  endpoint,
		serverKey: serverKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type fcmMessage struct {
	To           string          `json:"to"`
	Notification fcmNotification `json:"notification"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send posts one notification; non-2xx responses are errors so the job retries.
func (s *FCMSender) Send(ctx context.Context, token, title, body string) error {
	raw, err := json.Marshal(fcmMessage{
		To:           token,
		Notification: fcmNotification{Title: title, Body: body},
	})
	if err != nil {
		return fmt.Errorf("marshal fcm message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("fcm status: %d", resp.StatusCode)
	}
	return nil
}

// PushProcessor drains the push queue and delivers notifications.
type PushProcessor struct {
	sender PushSender
	queue  *queue.Queue
	logger *zap.Logger
}

// NewPushProcessor creates a push notification processor.
func NewPushProcessor(sender PushSender, q *queue.Queue, logger *zap.Logger) *PushProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PushProcessor{sender: sender, queue: q, logger: logger}
}

// Process executes one push job. Jobs without a device token are dropped, not
// retried.
func (p *PushProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypePush {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.PushPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if payload.FCMToken == "" {
		p.logger.Debug("skipping push without device token", zap.Int64("user_id", payload.UserID))
		return nil
	}
	if err := p.sender.Send(ctx, payload.FCMToken, payload.Title, payload.Body); err != nil {
		return fmt.Errorf("push to user %d: %w", payload.UserID, err)
	}
	p.logger.Info("push delivered", zap.String("job_id", job.ID), zap.Int64("user_id", payload.UserID))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *PushProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("push worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
		}
	}
}
