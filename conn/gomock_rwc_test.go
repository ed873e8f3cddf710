package conn

import (
	"context"
	"errors"
	"testing"
	"time"

	gomock "go.uber.org/mock/gomock"

	"github.com/gwww/elkm1/message"
)

// TestWriteLoopWritesFramedLineToMockTransport drives runSession against a
// MockReadWriteCloser instead of a net.Pipe, asserting the exact bytes
// writeLoop puts on the wire and that the transport is closed exactly
// once when the session ends.
func TestWriteLoopWritesFramedLineToMockTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	rwc := NewMockReadWriteCloser(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	wrote := make(chan []byte, 1)
	rwc.EXPECT().Write(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		got := make([]byte, len(p))
		copy(got, p)
		wrote <- got
		return len(p), nil
	}).AnyTimes()
	rwc.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		<-ctx.Done() // block until the session is torn down
		return 0, errors.New("session closed")
	}).AnyTimes()
	rwc.EXPECT().Close().Return(nil).Times(1)

	c := NewConnection(Config{Scheme: SchemeTCP, Host: "test"}, nil, nil)

	c.Send(message.RequestVersion(), false)

	done := make(chan struct{})
	go func() {
		c.runSession(ctx, rwc, true)
		close(done)
	}()

	select {
	case got := <-wrote:
		expected := message.RequestVersion().Frame() + "\r\n"
		if string(got) != expected {
			t.Fatalf("wrote %q, want %q", got, expected)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for write")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runSession did not return after cancel")
	}
}
