package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"friend-service/internal/models"
	"friend-service/internal/services"
	"friend-service/internal/testutil"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hubEnv struct {
	hub    *Hub
	redis  *services.RedisService
	server *httptest.Server
}

func newHubEnv(t *testing.T) *hubEnv {
	_, rc := testutil.NewTestRedis(t)
	redisService := services.NewRedisService(rc)
	hub := NewHub(redisService)
	go hub.Run()
	t.Cleanup(hub.Stop)

	upgrader := NewUpgrader([]string{"http://allowed.example"})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseUint(r.URL.Query().Get("user"), 10, 64)
		ServeWS(hub, upgrader, w, r, uint(id))
	}))
	t.Cleanup(server.Close)

	return &hubEnv{hub: hub, redis: redisService, server: server}
}

func (e *hubEnv) dial(t *testing.T, userID uint) *gws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/?user=" + strconv.FormatUint(uint64(userID), 10)
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *gws.Conn) models.FriendRequestEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var event models.FriendRequestEvent
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func TestHubDeliversToEveryConnectionOfRecipient(t *testing.T) {
	env := newHubEnv(t)
	first := env.dial(t, 2)
	second := env.dial(t, 2)
	other := env.dial(t, 3)

	require.Eventually(t, func() bool {
		return env.hub.ConnectionCount(2) == 2 && env.hub.ConnectionCount(3) == 1
	}, 2*time.Second, 10*time.Millisecond)

	event := models.FriendRequestEvent{
		ID: "evt-1", Type: models.EventFriendRequestSent, RequestID: 5,
		SenderID: 1, ReceiverID: 2, Status: models.FriendRequestPending,
	}
	require.NoError(t, env.redis.Publish(context.Background(), event))

	for _, conn := range []*gws.Conn{first, second} {
		got := readEvent(t, conn)
		assert.Equal(t, "evt-1", got.ID)
		assert.Equal(t, models.EventFriendRequestSent, got.Type)
	}

	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "unrelated user receives nothing")
}

func TestHubUnregistersClosedConnections(t *testing.T) {
	env := newHubEnv(t)
	conn := env.dial(t, 7)

	require.Eventually(t, func() bool { return env.hub.ConnectionCount(7) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return env.hub.ConnectionCount(7) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestUpgraderOriginCheck(t *testing.T) {
	env := newHubEnv(t)
	url := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/?user=1"

	_, resp, err := gws.DefaultDialer.Dial(url, http.Header{"Origin": []string{"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := gws.DefaultDialer.Dial(url, http.Header{"Origin": []string{"http://allowed.example"}})
	require.NoError(t, err)
	conn.Close()
}

func TestHubResubscribesWhenRedisComesBack(t *testing.T) {
	mr, rc := testutil.NewTestRedis(t)
	redisService := services.NewRedisService(rc)
	mr.Close()

	hub := NewHub(redisService)
	go hub.Run()
	t.Cleanup(hub.Stop)

	time.Sleep(50 * time.Millisecond)
	assert.False(t, hub.Subscribed())

	require.NoError(t, mr.Restart())
	require.Eventually(t, hub.Subscribed, 5*time.Second, 20*time.Millisecond)

	upgrader := NewUpgrader(nil)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, upgrader, w, r, 4)
	}))
	t.Cleanup(server.Close)

	conn, _, err := gws.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return hub.ConnectionCount(4) == 1 }, 2*time.Second, 10*time.Millisecond)

	event := models.FriendRequestEvent{ID: "evt-2", Type: models.EventFriendRequestAccepted, RequestID: 9, SenderID: 4, ReceiverID: 5}
	require.NoError(t, redisService.Publish(context.Background(), event))
	assert.Equal(t, "evt-2", readEvent(t, conn).ID)
}
