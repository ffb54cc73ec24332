// Package events defines the event names, payload keys, and status
// values used in statusbus.
package events

// EventName identifies one notification channel. Equality is by value.
type EventName string

const (
	// EventNetworkConnection carries network link status changes.
	EventNetworkConnection EventName = "network_connection"

	// EventFileActivity carries file system activity from the watcher.
	EventFileActivity EventName = "file_activity"
)

// PayloadKey identifies a named field inside a notification payload.
type PayloadKey string

const (
	// KeyNetworkStatus is the payload key for EventNetworkConnection.
	KeyNetworkStatus PayloadKey = "network_status"

	// KeyFileStatus is the payload key for EventFileActivity.
	KeyFileStatus PayloadKey = "file_status"
)

// Payload is the data delivered with a notification, keyed by PayloadKey.
// A given event name carries a stable, known key; listeners watching a
// key the payload lacks are skipped silently.
type Payload map[PayloadKey]string

// Value returns the value for key and whether it was present.
func (p Payload) Value(key PayloadKey) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// StatusUnknown is the sentinel a listener reports before any
// notification has been delivered to it.
const StatusUnknown = "N/A"

// NetworkStatus is the closed set of values published on
// EventNetworkConnection.
type NetworkStatus string

const (
	StatusConnected     NetworkStatus = "connected"
	StatusDisconnected  NetworkStatus = "disconnected"
	StatusConnecting    NetworkStatus = "connecting"
	StatusDisconnecting NetworkStatus = "disconnecting"
	StatusError         NetworkStatus = "error"
)

// Valid reports whether s is a member of the closed status set.
func (s NetworkStatus) Valid() bool {
	switch s {
	case StatusConnected, StatusDisconnected, StatusConnecting,
		StatusDisconnecting, StatusError:
		return true
	}
	return false
}

// String returns the wire form of the status.
func (s NetworkStatus) String() string {
	return string(s)
}

// ParseNetworkStatus parses a string into a NetworkStatus.
// The second return value is false for values outside the closed set.
func ParseNetworkStatus(v string) (NetworkStatus, bool) {
	s := NetworkStatus(v)
	if !s.Valid() {
		return "", false
	}
	return s, true
}

// NewNetworkPayload builds the payload for one network status change.
func NewNetworkPayload(status NetworkStatus) Payload {
	return Payload{KeyNetworkStatus: status.String()}
}

// NewFilePayload builds the payload for one file activity notification.
func NewFilePayload(status string) Payload {
	return Payload{KeyFileStatus: status}
}
