package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jlpt_backend/internal/config"
	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeCompletionServer(t *testing.T, reply string, captured *ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		resp := ChatCompletionResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message AIChatMessage `json:"message"`
		}{Message: AIChatMessage{Role: "assistant", Content: reply}})
		json.NewEncoder(w).Encode(resp)
	}))
}

func newChatService(t *testing.T, baseURL string) *ChatService {
	t.Helper()
	db := newTestDB(t)
	ai := NewAIService(config.AIConfig{BaseURL: baseURL, APIKey: "test-key", Model: "test-model"})
	return NewChatService(repository.NewChatRepository(db), ai)
}

func TestChatSendMessageCreatesSession(t *testing.T) {
	var captured ChatCompletionRequest
	server := fakeCompletionServer(t, "「は」là trợ từ chủ đề.", &captured)
	defer server.Close()

	svc := newChatService(t, server.URL)

	result, err := svc.SendMessage(6, &ChatRequest{Message: "Trợ từ は dùng thế nào?"})
	require.NoError(t, err)
	require.NotZero(t, result.SessionID)
	assert.Equal(t, "「は」là trợ từ chủ đề.", result.Reply)

	// The request carries the Vietnamese tutor system prompt first.
	require.NotEmpty(t, captured.Messages)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "tiếng Việt")
	assert.Equal(t, "test-model", captured.Model)

	session, messages, err := svc.GetSession(6, result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Trợ từ は dùng thế nào?", session.Title)
	require.Len(t, messages, 2)
	assert.Equal(t, model.RoleUser, messages[0].Role)
	assert.Equal(t, model.RoleAssistant, messages[1].Role)
}

func TestChatSendMessageContinuesSessionWithHistory(t *testing.T) {
	var captured ChatCompletionRequest
	server := fakeCompletionServer(t, "Vâng.", &captured)
	defer server.Close()

	svc := newChatService(t, server.URL)

	first, err := svc.SendMessage(6, &ChatRequest{Message: "Câu hỏi một"})
	require.NoError(t, err)

	_, err = svc.SendMessage(6, &ChatRequest{Message: "Câu hỏi hai", SessionID: &first.SessionID})
	require.NoError(t, err)

	// system + 2 history turns + new user message
	assert.Len(t, captured.Messages, 4)
	assert.Equal(t, "Câu hỏi hai", captured.Messages[3].Content)

	_, _, err = svc.GetSession(7, first.SessionID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestChatSessionTitleTruncated(t *testing.T) {
	server := fakeCompletionServer(t, "OK", nil)
	defer server.Close()

	svc := newChatService(t, server.URL)

	long := strings.Repeat("あ", 80)
	result, err := svc.SendMessage(6, &ChatRequest{Message: long})
	require.NoError(t, err)

	session, _, err := svc.GetSession(6, result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 50, len([]rune(session.Title)))
}

func TestChatDisabledWithoutConfig(t *testing.T) {
	svc := newChatService(t, "")

	_, err := svc.SendMessage(6, &ChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, util.ErrChatServiceDisabled)
}
