package mqtt

import "errors"

var (
	// ErrConnectionFailed wraps broker errors and timeouts from Connect.
	ErrConnectionFailed = errors.New("mqtt: connection failed")

	// ErrNotConnected is returned while the broker link is down.
	ErrNotConnected = errors.New("mqtt: client not connected")

	// ErrPublishFailed wraps encoding, size, timeout and broker failures of a publish.
	ErrPublishFailed = errors.New("mqtt: publish failed")

	// ErrInvalidTopic is returned for an empty topic.
	ErrInvalidTopic = errors.New("mqtt: empty topic")

	// ErrInvalidQoS is returned for a QoS outside 0..2.
	ErrInvalidQoS = errors.New("mqtt: qos must be 0, 1 or 2")
)
