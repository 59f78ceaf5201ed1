package messaging

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ChangeTopic names one kind of broadcast between the fetching node and
// the serving nodes.
type ChangeTopic string

const (
	CatalogUpdated  ChangeTopic = "catalog_updated"
	SettingsChanged ChangeTopic = "settings_changed"
)

// TopicName scopes a topic to one store, "ar_catalog_updated". Stores
// share the broker but never each others messages.
func TopicName(store string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", store, topic)
}

func Dial(url string) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
}

func DefineTopic(ch *amqp.Channel, store string, topic ChangeTopic) error {
	name := TopicName(store, topic)
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,   // arguments
	); err != nil {
		return err
	}
	return nil
}

func SendChange[V any](c *amqp.Connection, store string, topic ChangeTopic, data V) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := TopicName(store, topic)
	return ch.Publish(
		name,
		name,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        bytes,
		},
	)
}

func DeclareBindAndConsume(ch *amqp.Channel, store string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := TopicName(store, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

// ListenToTopic consumes a topic on its own goroutine. The handler
// returning an error stops consumption and leaves the message unacked.
func ListenToTopic(ch *amqp.Channel, store string, topic ChangeTopic, handler func(amqp.Delivery) error) error {
	deliveries, err := DeclareBindAndConsume(ch, store, topic)
	if err != nil {
		return err
	}

	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		for d := range msgs {
			if err := handler(d); err != nil {
				log.Printf("Error processing %s message: %v", topic, err)
				return
			}
			d.Ack(false)
		}
	}(deliveries)
	return nil
}
