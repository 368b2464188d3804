package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"friend-service/internal/models"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPublisherSendsKeyedJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	event := models.FriendRequestEvent{
		ID: "evt-1", Type: models.EventFriendRequestSent, RequestID: 17,
		SenderID: 1, ReceiverID: 2, Status: models.FriendRequestPending,
	}

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "friend-events" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "17" {
			return errors.New("unexpected key " + string(key))
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var got models.FriendRequestEvent
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if got.ID != event.ID || got.Type != event.Type {
			return errors.New("payload does not match event")
		}
		return nil
	})

	publisher := NewEventPublisher(producer, "friend-events")
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.NoError(t, publisher.Close())
}

func TestEventPublisherReturnsSendError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewEventPublisher(producer, "friend-events")
	err := publisher.Publish(context.Background(), models.FriendRequestEvent{ID: "evt-2", RequestID: 3})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}
