package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationQueues(t *testing.T) {
	queues := NotificationQueues()
	require.Len(t, queues, 2)

	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
	}

	assert.Equal(t, "notification.submitted", QueueFor(RoutingSubmitted))
	assert.Equal(t, "notification.expiring", QueueFor(RoutingExpiring))
	assert.Empty(t, QueueFor("upcoming"))
}
