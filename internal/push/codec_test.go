package push

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrame(t *testing.T) {
	tests := []struct {
		name  string
		msg   string
		kind  frameKind
		event string
		data  string
	}{
		{"open", `0{"sid":"a","pingInterval":25000}`, frameOpen, "", `{"sid":"a","pingInterval":25000}`},
		{"close", "1", frameClose, "", ""},
		{"ping", "2", framePing, "", ""},
		{"pong", "3", frameIgnored, "", ""},
		{"noop", "6", frameIgnored, "", ""},
		{"connect ack", `40{"sid":"b"}`, frameConnect, "", `{"sid":"b"}`},
		{"disconnect", "41", frameDisconnect, "", ""},
		{"connect error", `44{"message":"not allowed"}`, frameConnectError, "", `{"message":"not allowed"}`},
		{"event", `42["new_incident",{"id":"1"}]`, frameEvent, "new_incident", `{"id":"1"}`},
		{"event without payload", `42["ping_me"]`, frameEvent, "ping_me", ""},
		{"event with ack id", `4217["incident_verified",{"id":"7"}]`, frameEvent, "incident_verified", `{"id":"7"}`},
		{"event in namespace", `42/admin,["incident_deleted",{"incident_id":"9"}]`, frameEvent, "incident_deleted", `{"incident_id":"9"}`},
		{"binary ack ignored", `46[]`, frameIgnored, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := parseFrame([]byte(tt.msg))

			require.NoError(t, err)
			assert.Equal(t, tt.kind, f.kind)
			assert.Equal(t, tt.event, f.event)
			assert.Equal(t, tt.data, string(f.data))
		})
	}
}

func TestParseFrame_Malformed(t *testing.T) {
	for _, msg := range []string{"", "4", "9", `42`, `42{}`, `42[1,2]`, `42[""]`} {
		_, err := parseFrame([]byte(msg))
		assert.ErrorIs(t, err, errBadFrame, "message %q", msg)
	}
}

func TestSocketURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://localhost:8000", "ws://localhost:8000/socket.io/?EIO=4&transport=websocket"},
		{"https://api.example.org/", "wss://api.example.org/socket.io/?EIO=4&transport=websocket"},
		{"http://gw.local/backend", "ws://gw.local/backend/socket.io/?EIO=4&transport=websocket"},
	}
	for _, tt := range tests {
		got, err := socketURL(tt.base)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := socketURL("ftp://example.org")
	assert.Error(t, err)
}
