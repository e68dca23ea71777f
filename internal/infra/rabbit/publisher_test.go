package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"trivia-service/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisherSendsPlayFinished(t *testing.T) {
	ch := &fakeChannel{}
	pub := NewPublisher(ch, "trivia.plays")
	ended := time.Date(2024, 5, 1, 12, 0, 12, 0, time.UTC)

	err := pub.AddPlay(context.Background(), domain.PlayResult{ID: "p1", QuizID: "quiz-1", EndedAt: ended, ScorePct: 50})
	require.NoError(t, err)
	require.Len(t, ch.sent, 1)

	sent := ch.sent[0]
	assert.Equal(t, "trivia.plays", sent.exchange)
	assert.Equal(t, "play.finished", sent.key)
	assert.Equal(t, "application/json", sent.msg.ContentType)
	assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)
	assert.Equal(t, "p1", sent.msg.MessageId)
	assert.True(t, sent.msg.Timestamp.Equal(ended))

	var event PlayFinished
	require.NoError(t, json.Unmarshal(sent.msg.Body, &event))
	assert.Equal(t, "play.finished", event.Event)
	assert.Equal(t, "quiz-1", event.Result.QuizID)
	assert.Equal(t, 50, event.Result.ScorePct)

	require.NoError(t, pub.Close())
	assert.True(t, ch.closed)
}

func TestPublisherWrapsErrors(t *testing.T) {
	boom := errors.New("channel closed")
	pub := NewPublisher(&fakeChannel{err: boom}, "trivia.plays")

	err := pub.AddPlay(context.Background(), domain.PlayResult{ID: "p1"})
	assert.ErrorIs(t, err, boom)
}
