// Package broker declares the publishing contract used to push grid records
// to a message broker.
package broker

import "errors"

// ErrNotConnected is returned when publishing on a closed connection.
var ErrNotConnected = errors.New("broker client not connected")

// Publisher sends payloads to broker topics. Topics use "/" as separator;
// implementations translate them to their own naming.
type Publisher interface {
	// Publish sends payload to topic, retrying transient failures.
	Publish(topic string, payload []byte) error
	// Disconnect closes the broker connection.
	Disconnect()
}
