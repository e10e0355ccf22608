package ws

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/sea-battle/internal/config"
	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/internal/usecase/game"
	"github.com/kiryu-dev/sea-battle/internal/usecase/hub"
	"github.com/kiryu-dev/sea-battle/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const readTimeout = 5 * time.Second

type hubFunc func(ctx context.Context, client domain.Client) error

func (f hubFunc) Handle(ctx context.Context, client domain.Client) error {
	return f(ctx, client)
}

func (hubFunc) Stats() domain.HubStats {
	return domain.HubStats{ActiveMatches: 1, StartedMatches: 3, FinishedMatches: 2}
}

func startServer(t *testing.T, hub domain.HubUseCase) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New("", hub, zap.NewNop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, clientUuid string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	if clientUuid != "" {
		header.Set(domain.ClientUuidHeader, clientUuid)
	}
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/game", header)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) domain.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readTimeout)))
	var msg domain.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestServeWsRelaysMessages(t *testing.T) {
	type session struct {
		clientUuid string
		received   domain.Message
		readErr    error
	}
	done := make(chan session, 1)
	srv := startServer(t, hubFunc(func(_ context.Context, client domain.Client) error {
		s := session{clientUuid: client.Uuid()}
		if err := client.WriteMessage(domain.Message{Type: domain.RequestAttack}); err != nil {
			return err
		}
		s.received, s.readErr = client.ReadMessage()
		done <- s
		return nil
	}))

	conn := dial(t, srv, "player-1")
	assert.Equal(t, domain.RequestAttack, readMessage(t, conn).Type)
	require.NoError(t, conn.WriteJSON(domain.Message{
		Type:    domain.Attack,
		Payload: domain.AttackPayload{Row: 1, Col: 6},
	}))

	select {
	case s := <-done:
		require.NoError(t, s.readErr)
		assert.Equal(t, "player-1", s.clientUuid)
		assert.Equal(t, domain.Attack, s.received.Type)
		payload, err := utils.UnmarshalJson[domain.AttackPayload](s.received.Payload)
		require.NoError(t, err)
		assert.Equal(t, domain.Coord{Row: 1, Col: 6}, payload.Coord())
	case <-time.After(readTimeout):
		t.Fatal("hub did not receive the message")
	}
}

func TestServeWsAssignsClientUuid(t *testing.T) {
	uuids := make(chan string, 1)
	srv := startServer(t, hubFunc(func(_ context.Context, client domain.Client) error {
		uuids <- client.Uuid()
		return nil
	}))

	dial(t, srv, "")
	select {
	case clientUuid := <-uuids:
		assert.NotEmpty(t, clientUuid)
	case <-time.After(readTimeout):
		t.Fatal("hub was not called")
	}
}

func TestServeWsReportsClosedConnection(t *testing.T) {
	errs := make(chan error, 1)
	srv := startServer(t, hubFunc(func(_ context.Context, client domain.Client) error {
		_, err := client.ReadMessage()
		errs <- err
		return nil
	}))

	conn := dial(t, srv, "player-1")
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	require.NoError(t, conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second)))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, domain.ErrConnectionClosed)
	case <-time.After(readTimeout):
		t.Fatal("hub did not observe the close frame")
	}
}

func TestHealthCheck(t *testing.T) {
	srv := startServer(t, hubFunc(nil))

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var health domain.HealthCheckResponse
	require.NoError(t, jsoniter.Unmarshal(body, &health))
	assert.Equal(t, domain.HealthCheckResponse{
		Status:          "ok",
		ActiveMatches:   1,
		StartedMatches:  3,
		FinishedMatches: 2,
	}, health)
}

func TestHealthCheckRejectsOtherMethods(t *testing.T) {
	srv := startServer(t, hubFunc(nil))

	resp, err := http.Post(srv.URL+"/health", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMatchOverWebsocket(t *testing.T) {
	cfg := config.Config{
		Fleet:     []int{4, 3, 3, 2, 2, 2, 1, 1, 1, 1},
		Placement: config.PlacementConfig{MaxAttempts: 10000},
		Opponent:  config.OpponentConfig{Seed: 11},
	}
	h, err := hub.New(game.New(0, zap.NewNop()), cfg, zap.NewNop())
	require.NoError(t, err)
	srv := startServer(t, h)
	conn := dial(t, srv, "player-1")

	msg := readMessage(t, conn)
	require.Equal(t, domain.StartMatch, msg.Type)
	start, err := utils.UnmarshalJson[domain.StartMatchPayload](msg.Payload)
	require.NoError(t, err)
	assert.NotEmpty(t, start.MatchUuid)
	assert.Len(t, start.Fleet, len(cfg.Fleet))
	require.Equal(t, domain.RequestAttack, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteJSON(domain.Message{
		Type:    domain.Attack,
		Payload: domain.AttackPayload{Row: 4, Col: 4},
	}))
	msg = readMessage(t, conn)
	require.Equal(t, domain.AttackResult, msg.Type)
	result, err := utils.UnmarshalJson[domain.AttackResultPayload](msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, domain.Human, result.Attacker)
	assert.Equal(t, domain.Coord{Row: 4, Col: 4}, result.Coord)
	assert.NotEqual(t, domain.OutcomeRepeat, result.Outcome)

	require.NoError(t, conn.WriteJSON(domain.Message{Type: domain.Leave}))
	require.Eventually(t, func() bool {
		return h.Stats().ActiveMatches == 0
	}, readTimeout, 10*time.Millisecond)
	assert.Equal(t, int64(1), h.Stats().StartedMatches)
}

func TestListenAndServeStopsOnShutdown(t *testing.T) {
	s := New("127.0.0.1:0", hubFunc(nil), zap.NewNop())
	errs := make(chan error, 1)
	go func() {
		errs <- s.ListenAndServe(context.Background())
	}()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	select {
	case err := <-errs:
		assert.NoError(t, err)
	case <-time.After(readTimeout):
		t.Fatal("server did not stop")
	}
}
