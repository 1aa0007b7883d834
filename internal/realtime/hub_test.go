package realtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	got  [][]byte
	fail bool
}

func (f *fakeClient) Send(message []byte) bool {
	if f.fail {
		return false
	}
	f.got = append(f.got, message)
	return true
}

func (f *fakeClient) Close() {}

func TestHub_BroadcastToAll(t *testing.T) {
	h := NewHub()
	a, b, broken := &fakeClient{}, &fakeClient{}, &fakeClient{fail: true}
	h.Register(a)
	h.Register(b)
	h.Register(broken)
	require.Equal(t, 3, h.Len())

	h.BroadcastJSON(map[string]string{"type": "task_created"})
	require.Len(t, a.got, 1)
	require.JSONEq(t, `{"type":"task_created"}`, string(b.got[0]))

	h.Unregister(a)
	h.Broadcast([]byte("x"))
	require.Len(t, a.got, 1)
	require.Len(t, b.got, 2)
}
