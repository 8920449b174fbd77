package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"webstories/checklist"
	"webstories/config"
	"webstories/types"
)

type payload struct {
	ID string `json:"id"`
}

func TestTypedMessageHandler(t *testing.T) {
	var seen []string
	h := &TypedMessageHandler[payload]{
		Validate: func(p *payload) bool { return p.ID != "" },
		Process: func(_ context.Context, p *payload) error {
			if p.ID == "fail" {
				return errors.New("boom")
			}
			seen = append(seen, p.ID)
			return nil
		},
		AlwaysMark: true,
	}
	ctx := context.Background()

	mark, err := h.HandleMessage(ctx, []byte(`{"id":"a"}`))
	require.NoError(t, err)
	assert.True(t, mark)

	mark, err = h.HandleMessage(ctx, []byte(`not json`))
	require.NoError(t, err)
	assert.True(t, mark, "undecodable messages are skipped")

	mark, err = h.HandleMessage(ctx, []byte(`{}`))
	require.NoError(t, err)
	assert.True(t, mark)

	mark, err = h.HandleMessage(ctx, []byte(`{"id":"fail"}`))
	assert.Error(t, err)
	assert.False(t, mark, "failed messages are left for redelivery")

	h.MarkFailed = true
	mark, err = h.HandleMessage(ctx, []byte(`{"id":"fail"}`))
	assert.Error(t, err)
	assert.True(t, mark)

	assert.Equal(t, []string{"a"}, seen)
}

func TestProducerPublishResult(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var res checklist.Result
		if err := json.Unmarshal(val, &res); err != nil {
			return err
		}
		if res.StoryID != "42" {
			return errors.New("unexpected story id")
		}
		return nil
	})

	p := NewProducerFrom(mock, config.ChecklistResultsTopic, zap.NewNop())
	require.NoError(t, p.PublishResult(context.Background(), &checklist.Result{StoryID: "42"}))
	require.NoError(t, p.Close())
}

func TestProducerPublishFailure(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerFrom(mock, config.ChecklistResultsTopic, nil)
	err := p.PublishResult(context.Background(), &checklist.Result{StoryID: "42"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

type recordingPublisher struct {
	results []*checklist.Result
}

func (r *recordingPublisher) PublishResult(_ context.Context, res *checklist.Result) error {
	r.results = append(r.results, res)
	return nil
}

func TestStoryEventHandler(t *testing.T) {
	sessions := checklist.NewSessions(checklist.New(config.Default().Checks), nil, zap.NewNop())
	pub := &recordingPublisher{}
	h := NewStoryEventHandler(sessions, pub, zap.NewNop())

	ev := types.StoryEvent{
		StoryID: "42",
		Type:    types.EventStoryUpdated,
		Story:   &types.Story{ID: "42", Title: "Untitled"},
	}
	data, err := json.Marshal(ev)
	require.NoError(t, err)

	mark, err := h.HandleMessage(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, mark)

	require.Len(t, pub.results, 1)
	assert.Equal(t, "42", pub.results[0].StoryID)
	assert.Equal(t, 1, pub.results[0].Count, "missing excerpt")
	assert.Equal(t, 1, sessions.Len())
}

func TestStoryEventHandlerUnknownSession(t *testing.T) {
	sessions := checklist.NewSessions(checklist.New(config.Default().Checks), nil, zap.NewNop())
	h := NewStoryEventHandler(sessions, &recordingPublisher{}, nil)

	mark, err := h.HandleMessage(context.Background(), []byte(`{"session_id":"nope","type":"story.updated"}`))
	assert.ErrorIs(t, err, checklist.ErrSessionNotFound)
	assert.True(t, mark, "failed story events are not redelivered")
}
