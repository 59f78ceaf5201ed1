package messaging

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

// SettingsMessage is the wire form of the owner settings, kept separate
// from types.Settings so the mutex never travels.
type SettingsMessage struct {
	AccessoryCategories []string `json:"accessoryCategories"`
	MinQuantity         uint     `json:"minQuantity"`
}

func CurrentSettingsMessage() SettingsMessage {
	return SettingsMessage{
		AccessoryCategories: types.CurrentSettings.GetAccessoryCategories(),
		MinQuantity:         types.CurrentSettings.GetMinQuantity(),
	}
}

func (m SettingsMessage) Apply() {
	types.CurrentSettings.SetAccessoryCategories(m.AccessoryCategories)
	types.CurrentSettings.SetMinQuantity(m.MinQuantity)
}

// RabbitTransport carries catalog snapshots and settings from the node
// that fetches the sheet to the nodes that serve the storefront.
type RabbitTransport struct {
	Conn  *amqp.Connection
	Store string
}

// NewRabbitTransport connects and declares the topics for one store, so
// publisher and listener nodes can start in any order.
func NewRabbitTransport(url, store string) (*RabbitTransport, error) {
	conn, err := Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	for _, topic := range []ChangeTopic{CatalogUpdated, SettingsChanged} {
		if err := DefineTopic(ch, store, topic); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return &RabbitTransport{Conn: conn, Store: store}, nil
}

func (t *RabbitTransport) Close() error {
	return t.Conn.Close()
}

func (t *RabbitTransport) PublishCatalog(snapshot *types.Snapshot) error {
	return SendChange(t.Conn, t.Store, CatalogUpdated, snapshot)
}

func (t *RabbitTransport) PublishSettings() error {
	return SendChange(t.Conn, t.Store, SettingsChanged, CurrentSettingsMessage())
}

// ListenForCatalog delivers every received snapshot to the handler.
// Payloads that do not parse are logged and dropped, one bad message must
// not wedge the queue.
func (t *RabbitTransport) ListenForCatalog(handler func(*types.Snapshot) error) error {
	ch, err := t.Conn.Channel()
	if err != nil {
		return err
	}
	return ListenToTopic(ch, t.Store, CatalogUpdated, func(d amqp.Delivery) error {
		snapshot := &types.Snapshot{}
		if err := json.Unmarshal(d.Body, snapshot); err != nil {
			log.Printf("Failed to unmarshal catalog message: %v", err)
			return nil
		}
		return handler(snapshot)
	})
}

// ListenForSettings applies received settings to CurrentSettings and then
// notifies the handler, which may be nil.
func (t *RabbitTransport) ListenForSettings(handler func() error) error {
	ch, err := t.Conn.Channel()
	if err != nil {
		return err
	}
	return ListenToTopic(ch, t.Store, SettingsChanged, func(d amqp.Delivery) error {
		message := SettingsMessage{}
		if err := json.Unmarshal(d.Body, &message); err != nil {
			log.Printf("Failed to unmarshal settings message: %v", err)
			return nil
		}
		message.Apply()
		if handler != nil {
			return handler()
		}
		return nil
	})
}
