package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/service"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userIDOf(t *testing.T, ta *testApp, token string) uint {
	t.Helper()
	w := ta.do(http.MethodGet, "/protected/user/get/data/basic", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var basic models.UserBasic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &basic))
	return basic.ID
}

func dialFeed(t *testing.T, serverURL, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(serverURL, "http") + "/protected/predict1/feed"

	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Authorization": {"Bearer " + token}})
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readPrediction(t *testing.T, conn *websocket.Conn) models.PredictionResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	msgType, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, msgType)

	var got models.PredictionResponse
	require.NoError(t, json.Unmarshal(data, &got))
	return got
}

func TestPredictionFeed(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ta := newTestAppWithRedis(t, rdb)
	srv := httptest.NewServer(ta.router)
	t.Cleanup(srv.Close)

	aliceToken := ta.registerAndLogin("alice", "alice@example.com")
	bobToken := ta.registerAndLogin("bob", "bob@example.com")
	aliceID := userIDOf(t, ta, aliceToken)
	bobID := userIDOf(t, ta, bobToken)

	aliceFeed := dialFeed(t, srv.URL, aliceToken)
	bobFeed := dialFeed(t, srv.URL, bobToken)

	aliceChannel := service.PredictionChannel(aliceID)
	bobChannel := service.PredictionChannel(bobID)
	require.Eventually(t, func() bool {
		subs := mr.PubSubNumSub(aliceChannel, bobChannel)
		return subs[aliceChannel] == 1 && subs[bobChannel] == 1
	}, 5*time.Second, 10*time.Millisecond)

	for _, token := range []string{aliceToken, bobToken} {
		w := ta.do(http.MethodPost, "/protected/symptoms/add", token, gin.H{"symptoms": []string{"cough"}})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	ta.setUpstream(http.StatusOK, `["flu"]`)
	w := ta.do(http.MethodPost, "/protected/predict1", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	ta.setUpstream(http.StatusOK, `["cold"]`)
	w = ta.do(http.MethodPost, "/protected/predict1", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := readPrediction(t, aliceFeed)
	assert.Equal(t, aliceID, got.UserID)
	assert.Equal(t, "flu", got.Result)

	// alice's prediction was published first; bob's feed must skip it
	got = readPrediction(t, bobFeed)
	assert.Equal(t, bobID, got.UserID)
	assert.Equal(t, "cold", got.Result)
}

func TestPredictionFeedRequiresToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ta := newTestAppWithRedis(t, rdb)

	w := ta.do(http.MethodGet, "/protected/predict1/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"msg":"Missing Authorization Header"}`, w.Body.String())
}
