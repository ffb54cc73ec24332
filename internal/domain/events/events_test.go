package events

import "testing"

func TestNetworkStatus_Valid(t *testing.T) {
	valid := []NetworkStatus{
		StatusConnected,
		StatusDisconnected,
		StatusConnecting,
		StatusDisconnecting,
		StatusError,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("Valid() = false for %q, want true", s)
		}
	}

	invalid := []NetworkStatus{"", "online", "CONNECTED", StatusUnknown}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("Valid() = true for %q, want false", s)
		}
	}
}

func TestParseNetworkStatus(t *testing.T) {
	s, ok := ParseNetworkStatus("connected")
	if !ok {
		t.Fatal("ParseNetworkStatus(connected) not ok")
	}
	if s != StatusConnected {
		t.Errorf("ParseNetworkStatus(connected) = %q, want %q", s, StatusConnected)
	}

	if _, ok := ParseNetworkStatus("offline"); ok {
		t.Error("ParseNetworkStatus(offline) ok, want not ok")
	}
	if _, ok := ParseNetworkStatus(""); ok {
		t.Error("ParseNetworkStatus(\"\") ok, want not ok")
	}
}

func TestPayload_Value(t *testing.T) {
	p := NewNetworkPayload(StatusConnecting)

	v, ok := p.Value(KeyNetworkStatus)
	if !ok {
		t.Fatal("Value(KeyNetworkStatus) not ok")
	}
	if v != "connecting" {
		t.Errorf("Value(KeyNetworkStatus) = %q, want %q", v, "connecting")
	}

	if _, ok := p.Value(KeyFileStatus); ok {
		t.Error("Value(KeyFileStatus) ok on network payload, want not ok")
	}
}

func TestNewFilePayload(t *testing.T) {
	p := NewFilePayload("created")
	if v := p[KeyFileStatus]; v != "created" {
		t.Errorf("payload[KeyFileStatus] = %q, want %q", v, "created")
	}
}
