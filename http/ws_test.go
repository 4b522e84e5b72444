package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialPredictWS(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws/predict"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, msg string) predictResponse {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	require.NoError(t, conn.SetWriteDeadline(deadline))
	require.NoError(t, conn.SetReadDeadline(deadline))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))

	var resp predictResponse
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestPredictWebSocket(t *testing.T) {
	s, metrics := newTestServer(t, 1.0, 0.0)
	conn := dialPredictWS(t, s)

	resp := exchange(t, conn, `{"cgpa": 7.0}`)
	require.NotNil(t, resp.Prediction)
	assert.Equal(t, 7.0, resp.Prediction.Value)
	assert.Equal(t, 6.5, resp.Prediction.LowerBound)
	assert.Equal(t, 7.5, resp.Prediction.UpperBound)
	assert.Equal(t, "₹7.00 L", resp.Prediction.LPAText)

	resp = exchange(t, conn, `{"cgpa": 0}`)
	assert.Nil(t, resp.Prediction)
	assert.Equal(t, WarnNonPositiveCGPA, resp.Warning)

	resp = exchange(t, conn, `garbage`)
	assert.Nil(t, resp.Prediction)
	assert.Contains(t, resp.Error, "invalid message")

	// The connection survives warnings and errors.
	resp = exchange(t, conn, `{"cgpa": 7.0}`)
	require.NotNil(t, resp.Prediction)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WebSocketConnections))
}
