package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/abhisek/agentbrief/internal/enhance"
	"github.com/abhisek/agentbrief/internal/llm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

const scenarioJSON = `{
	"projectName": "orders-api",
	"projectType": "api-backend",
	"stackApproach": "choose",
	"stackTech": ["nodejs", "postgres"],
	"hasAuth": "yes",
	"storesData": "no",
	"hasPayments": "no",
	"hasSensitiveData": "no",
	"deployment": "aws",
	"llmTarget": "claude-code"
}`

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	srv := httptest.NewServer(NewHandler(opts))
	t.Cleanup(srv.Close)
	return srv
}

type deriveBody struct {
	Result struct {
		ProjectType string   `json:"projectType"`
		Skills      []string `json:"skills"`
		Filename    string   `json:"filename"`
		Guardrail   struct {
			Tier  int    `json:"tier"`
			Label string `json:"label"`
		} `json:"guardrail"`
	} `json:"result"`
	Document string `json:"document"`
	Filename string `json:"filename"`
	Enhanced bool   `json:"enhanced"`
}

func postDerive(t *testing.T, srv *httptest.Server, query, body string) (*http.Response, deriveBody) {
	t.Helper()
	resp, err := srv.Client().Post(srv.URL+"/api/derive"+query, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out deriveBody
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestDerive_BareSet(t *testing.T) {
	srv := newTestServer(t, Options{})
	resp, out := postDerive(t, srv, "", scenarioJSON)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "api-backend", out.Result.ProjectType)
	assert.Equal(t, 1, out.Result.Guardrail.Tier)
	assert.Equal(t, "STANDARD", out.Result.Guardrail.Label)
	assert.Equal(t, "CLAUDE.md", out.Filename)
	assert.True(t, strings.HasPrefix(out.Document, "<!-- Generated by agentbrief on 2026-03-14 | CLAUDE.md | Guardrail Tier 1: STANDARD -->"))
	assert.False(t, out.Enhanced)
}

func TestDerive_AnswersFile(t *testing.T) {
	srv := newTestServer(t, Options{})
	_, bare := postDerive(t, srv, "", scenarioJSON)
	resp, wrapped := postDerive(t, srv, "", `{"version":"v1","answers":`+scenarioJSON+`}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, bare, wrapped)
}

func TestDerive_BadRequests(t *testing.T) {
	srv := newTestServer(t, Options{})

	for name, body := range map[string]string{
		"not json":      `{nope`,
		"object answer": `{"projectType": {"x": 1}}`,
		"bad version":   `{"version":"v2","answers":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, _ := postDerive(t, srv, "", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	big := `{"description":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	resp, _ := postDerive(t, srv, "", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestDerive_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, Options{})
	resp, err := srv.Client().Get(srv.URL + "/api/derive")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestDerive_Enhanced(t *testing.T) {
	sections, _ := json.Marshal(map[string]string{
		"role": "You are a careful API engineer.", "context": "", "directives": "", "buildSeq": "",
	})
	svc, err := enhance.NewService(llm.NewMockProvider(llm.MockResponse{Content: sections}), enhance.DefaultConfig(), nil)
	require.NoError(t, err)
	srv := newTestServer(t, Options{Enhancer: svc})

	// Without the query flag the enhancer is not consulted.
	_, plain := postDerive(t, srv, "", scenarioJSON)
	assert.False(t, plain.Enhanced)

	resp, out := postDerive(t, srv, "?enhance=true", scenarioJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, out.Enhanced)
	assert.Contains(t, out.Document, "## Role\n\nYou are a careful API engineer.")
	assert.Contains(t, out.Document, "AI-enhanced")
}

func TestSkills(t *testing.T) {
	srv := newTestServer(t, Options{})
	resp, err := srv.Client().Get(srv.URL + "/api/skills")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var skills []skillView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&skills))
	require.NotEmpty(t, skills)
	assert.Equal(t, "skills/"+skills[0].ID+"/SKILL.md", skills[0].Path)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, Options{})
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/derive", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func dialPreview(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/preview"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, msg string) previewMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
	var out previewMessage
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

func TestPreviewWS(t *testing.T) {
	srv := newTestServer(t, Options{})
	conn := dialPreview(t, srv)

	out := exchange(t, conn, `{"projectName":"orders-api"}`)
	assert.False(t, out.Ready)
	assert.Nil(t, out.Result)

	out = exchange(t, conn, `{"projectType":"cli-tool"}`)
	require.True(t, out.Ready)
	require.NotNil(t, out.Result)
	assert.Equal(t, "AI_INSTRUCTIONS.md", out.Result.Filename)
	assert.Equal(t, 0, int(out.Result.Tier()))
	assert.Contains(t, out.Document, "## Build Sequence")

	out = exchange(t, conn, `{bad`)
	assert.False(t, out.Ready)
	assert.NotEmpty(t, out.Error)

	// The connection survives a malformed message.
	out = exchange(t, conn, scenarioJSON)
	require.True(t, out.Ready)
	assert.Equal(t, "CLAUDE.md", out.Result.Filename)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	s := New("127.0.0.1:0", NewHandler(Options{}), nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Second) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestDecodeAnswers(t *testing.T) {
	a, err := decodeAnswers([]byte(`{"stackTech":["go"],"hasAuth":true}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, a.List("stackTech"))
	assert.Equal(t, "true", a.String("hasAuth"))

	a, err = decodeAnswers([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, a)

	_, err = decodeAnswers(bytes.Repeat([]byte("x"), 3))
	assert.Error(t, err)
}
