package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestTimeLogsRequestIDAndError(t *testing.T) {
	buf := captureLog(t)
	ctx := WithRequestID(context.Background(), "abc")
	require.Equal(t, "abc", RequestID(ctx))

	err := errors.New("boom")
	Time(ctx, "venues.Get")(&err)

	require.Contains(t, buf.String(), "req_id=abc op=venues.Get")
	require.Contains(t, buf.String(), "err=boom")
}

func TestTimeWithoutError(t *testing.T) {
	buf := captureLog(t)

	var err error
	Time(context.Background(), "plan")(&err)

	require.Contains(t, buf.String(), "req_id= op=plan dur=")
	require.NotContains(t, buf.String(), "err=")
}
