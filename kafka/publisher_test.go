package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

func mockConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	return config
}

func TestPublishActivitySendsEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mockConfig())
	logged := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "audit" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "user_4" {
			return errors.New("unexpected key " + string(key))
		}
		raw, _ := msg.Value.Encode()
		var event ActivityLoggedEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return err
		}
		if event.LogID != 9 || event.ActionType != domain.ActionIngredientUpdated || !event.LoggedAt.Equal(logged) {
			return errors.New("unexpected payload " + string(raw))
		}
		return nil
	})

	p := NewPublisherWithProducer(producer, "audit")
	err := p.PublishActivity(context.Background(), domain.ActivityLog{
		ID:          9,
		UserID:      4,
		ActionType:  domain.ActionIngredientUpdated,
		Description: "Updated ingredient Milk",
		Timestamp:   logged,
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublishActivityReportsSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mockConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisherWithProducer(producer, "")
	err := p.PublishActivity(context.Background(), domain.ActivityLog{ID: 1, UserID: 1, ActionType: "X", Description: "y"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	assert.Equal(t, DefaultTopicActivityLogs, p.topic)
	require.NoError(t, p.Close())
}
