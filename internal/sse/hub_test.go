package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/forceteam/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "report",
			data:      `{"kind":"roster_set"}`,
			expected:  "event: report\ndata: {\"kind\":\"roster_set\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "report",
			data:      "{\n  \"kind\": \"roster_set\"\n}",
			expected:  "event: report\ndata: {\ndata:   \"kind\": \"roster_set\"\ndata: }\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"hello", []string{"hello"}},
		{"line1\nline2", []string{"line1", "line2"}},
		{"line1\n", []string{"line1"}},
		{"", []string{""}},
		{"line1\r\nline2\r\n", []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, splitLines(tt.input), "input %q", tt.input)
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := startHub(t)

	client := NewClient(hub, "127.0.0.1:1")
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("report", "data")

	select {
	case msg := <-client.send:
		assert.Equal(t, "event: report\ndata: data\n\n", string(msg))
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := startHub(t)

	client := NewClient(hub, "127.0.0.1:1")
	require.True(t, hub.Register(client))
	hub.Unregister(client)

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-client.send
	assert.False(t, ok, "send channel should be closed")
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := startHub(t)

	clients := []*Client{
		NewClient(hub, "a"),
		NewClient(hub, "b"),
		NewClient(hub, "c"),
	}
	for _, c := range clients {
		require.True(t, hub.Register(c))
	}
	require.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("update", "data")

	for i, c := range clients {
		select {
		case msg := <-c.send:
			assert.Equal(t, "event: update\ndata: data\n\n", string(msg))
		case <-time.After(time.Second):
			t.Errorf("client %d did not receive message", i)
		}
	}
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()

	client := NewClient(hub, "a")
	require.True(t, hub.Register(client))
	hub.Close()
	hub.Close()

	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("client channel was not closed")
	}
	assert.False(t, hub.Register(NewClient(hub, "b")))
}
