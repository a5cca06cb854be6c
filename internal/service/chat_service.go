package service

import (
	"jlpt_backend/internal/model"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/util"
)

// The tutor answers in Vietnamese and stays on topic.
const tutorSystemPrompt = "Bạn là trợ lý học tiếng Nhật cho người Việt Nam. " +
	"Hãy trả lời bằng tiếng Việt, giải thích ngữ pháp, từ vựng và kanji một cách " +
	"dễ hiểu, kèm ví dụ tiếng Nhật có phiên âm hiragana. Chỉ trả lời các câu hỏi " +
	"liên quan đến việc học tiếng Nhật và kỳ thi JLPT; nếu câu hỏi nằm ngoài phạm " +
	"vi đó, hãy lịch sự từ chối và hướng người dùng quay lại chủ đề học tập."

// History sent to the model is capped to keep requests bounded.
const chatHistoryLimit = 20

type ChatService struct {
	ChatRepo *repository.ChatRepository
	AI       *AIService
}

func NewChatService(chatRepo *repository.ChatRepository, ai *AIService) *ChatService {
	return &ChatService{ChatRepo: chatRepo, AI: ai}
}

type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID *uint  `json:"session_id"`
}

type ChatResult struct {
	SessionID uint   `json:"session_id"`
	Reply     string `json:"reply"`
}

// SendMessage appends the user turn, queries the tutor and stores the
// reply in the same session.
func (s *ChatService) SendMessage(userID uint, req *ChatRequest) (*ChatResult, error) {
	if !s.AI.Enabled() {
		return nil, util.ErrChatServiceDisabled
	}

	var session *model.ChatSession
	var err error
	if req.SessionID != nil {
		session, err = s.ChatRepo.FindSessionByID(userID, *req.SessionID)
		if err != nil {
			return nil, util.ErrSessionNotFound
		}
	} else {
		title := req.Message
		if len([]rune(title)) > 50 {
			title = string([]rune(title)[:50])
		}
		session = &model.ChatSession{UserID: userID, Title: title}
		if err := s.ChatRepo.CreateSession(session); err != nil {
			return nil, err
		}
	}

	messages, err := s.ChatRepo.ListMessages(session.ID)
	if err != nil {
		return nil, err
	}
	if len(messages) > chatHistoryLimit {
		messages = messages[len(messages)-chatHistoryLimit:]
	}

	history := make([]AIChatMessage, 0, len(messages))
	for _, m := range messages {
		history = append(history, AIChatMessage{Role: m.Role, Content: m.Content})
	}

	if err := s.ChatRepo.AppendMessage(&model.ChatMessage{
		SessionID: session.ID,
		Role:      model.RoleUser,
		Content:   req.Message,
	}); err != nil {
		return nil, err
	}

	reply, err := s.AI.Chat(tutorSystemPrompt, history, req.Message)
	if err != nil {
		return nil, err
	}

	if err := s.ChatRepo.AppendMessage(&model.ChatMessage{
		SessionID: session.ID,
		Role:      model.RoleAssistant,
		Content:   reply,
	}); err != nil {
		return nil, err
	}
	s.ChatRepo.TouchSession(session.ID)

	return &ChatResult{SessionID: session.ID, Reply: reply}, nil
}

func (s *ChatService) ListSessions(userID uint) ([]model.ChatSession, error) {
	return s.ChatRepo.ListSessions(userID)
}

func (s *ChatService) GetSession(userID, sessionID uint) (*model.ChatSession, []model.ChatMessage, error) {
	session, err := s.ChatRepo.FindSessionByID(userID, sessionID)
	if err != nil {
		return nil, nil, util.ErrSessionNotFound
	}
	messages, err := s.ChatRepo.ListMessages(session.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, messages, nil
}
