package rabbitmq

// Exchange direct-обменник, через который ходят все уведомления о заявках.
const Exchange = "notifications"

// Ключи маршрутизации уведомлений.
const (
	RoutingSubmitted = "submitted"
	RoutingExpiring  = "expiring"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// NotificationQueues очереди, которые читает sender.
func NotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification." + RoutingSubmitted, RoutingKey: RoutingSubmitted},
		{QueueName: "notification." + RoutingExpiring, RoutingKey: RoutingExpiring},
	}
}

// QueueFor имя очереди для ключа маршрутизации, пустая строка если такой нет.
func QueueFor(routingKey string) string {
	for _, q := range NotificationQueues() {
		if q.RoutingKey == routingKey {
			return q.QueueName
		}
	}
	return ""
}
