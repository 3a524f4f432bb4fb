package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnuMgit/hoardlinks-backend/internal/worker"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/queue"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(_ context.Context, token, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, token)
	return nil
}

func pushJob(t *testing.T, payload queue.PushPayload) *queue.Job {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &queue.Job{ID: "job-1", Type: queue.JobTypePush, Payload: raw}
}

func TestProcessDeliversPush(t *testing.T) {
	sender := &fakeSender{}
	p := worker.NewPushProcessor(sender, nil, nil)

	job := pushJob(t, queue.PushPayload{UserID: 8, FCMToken: "device-token", Title: "Welcome", Body: "hello"})
	require.NoError(t, p.Process(context.Background(), job))
	assert.Equal(t, []string{"device-token"}, sender.sent)
}

func TestProcessSkipsMissingToken(t *testing.T) {
	sender := &fakeSender{}
	p := worker.NewPushProcessor(sender, nil, nil)

	job := pushJob(t, queue.PushPayload{UserID: 8, Title: "Welcome"})
	require.NoError(t, p.Process(context.Background(), job))
	assert.Empty(t, sender.sent)
}

func TestProcessPropagatesSendError(t *testing.T) {
	sender := &fakeSender{err: errors.New("fcm unavailable")}
	p := worker.NewPushProcessor(sender, nil, nil)

	job := pushJob(t, queue.PushPayload{UserID: 8, FCMToken: "device-token"})
	assert.Error(t, p.Process(context.Background(), job))
}

func TestProcessRejectsUnknownJobType(t *testing.T) {
	p := worker.NewPushProcessor(&fakeSender{}, nil, nil)
	job := &queue.Job{ID: "job-2", Type: queue.JobType("email"), Payload: []byte(`{}`)}
	assert.Error(t, p.Process(context.Background(), job))
}
