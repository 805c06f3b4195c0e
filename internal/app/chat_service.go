package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/kanban/internal/core/chatctx"
	"github.com/example/kanban/internal/ctxutil"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// DefaultChatHistory is how many previous messages are replayed to the model.
const DefaultChatHistory = 5

// ChatServiceImpl implements the ChatService interface.
type ChatServiceImpl struct {
	boardRepo    secondary.BoardRepository
	chatRepo     secondary.ChatRepository
	loader       boardLoader
	completer    secondary.ChatCompleter
	logger       *zap.Logger
	systemPrompt string
	history      int
	now          func() time.Time
}

// ChatServiceDeps groups the collaborators of ChatServiceImpl.
type ChatServiceDeps struct {
	BoardRepo     secondary.BoardRepository
	ColumnRepo    secondary.ColumnRepository
	TaskRepo      secondary.TaskRepository
	LabelRepo     secondary.LabelRepository
	ChecklistRepo secondary.ChecklistRepository
	ChatRepo      secondary.ChatRepository
	Completer     secondary.ChatCompleter
	Logger        *zap.Logger
	SystemPrompt  string
	History       int
}

// NewChatService creates a new ChatService with injected dependencies.
func NewChatService(deps ChatServiceDeps) *ChatServiceImpl {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	history := deps.History
	if history <= 0 {
		history = DefaultChatHistory
	}
	return &ChatServiceImpl{
		boardRepo: deps.BoardRepo,
		chatRepo:  deps.ChatRepo,
		loader: boardLoader{
			columnRepo:    deps.ColumnRepo,
			taskRepo:      deps.TaskRepo,
			labelRepo:     deps.LabelRepo,
			checklistRepo: deps.ChecklistRepo,
		},
		completer:    deps.Completer,
		logger:       logger,
		systemPrompt: deps.SystemPrompt,
		history:      history,
		now:          time.Now,
	}
}

// SendMessage stores the user turn, asks the assistant and stores its reply.
// A failing assistant yields the fallback reply instead of an error.
func (s *ChatServiceImpl) SendMessage(ctx context.Context, boardID, content string) (*primary.ChatExchange, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("message cannot be empty")
	}

	boardCtx, err := s.BuildContext(ctx, boardID)
	if err != nil {
		return nil, err
	}

	previous, err := s.chatRepo.List(ctx, boardID, s.history)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	question, err := s.store(ctx, boardID, models.SenderUser, content)
	if err != nil {
		return nil, err
	}

	reply, fallback := s.ask(ctx, boardID, boardCtx, previous, content)

	answer, err := s.store(ctx, boardID, models.SenderAI, reply)
	if err != nil {
		return nil, err
	}

	return &primary.ChatExchange{
		Question: recordToChatMessage(question),
		Answer:   recordToChatMessage(answer),
		Fallback: fallback,
	}, nil
}

// ask calls the completer and reports whether the fallback reply was used.
func (s *ChatServiceImpl) ask(ctx context.Context, boardID string, boardCtx *models.ChatContext, previous []*secondary.ChatMessageRecord, content string) (string, bool) {
	if s.completer == nil {
		s.logger.Warn("chat completer not configured", zap.String("board_id", boardID))
		return models.ChatFallbackReply, true
	}

	payload, err := json.Marshal(boardCtx)
	if err != nil {
		s.logger.Error("failed to encode chat context", zap.String("board_id", boardID), zap.Error(err))
		return models.ChatFallbackReply, true
	}

	req := secondary.ChatRequest{
		SystemPrompt: s.systemPrompt,
		Context:      string(payload),
		Message:      content,
	}
	for _, m := range previous {
		role := "user"
		if m.Sender == models.SenderAI {
			role = "assistant"
		}
		req.History = append(req.History, secondary.ChatTurn{Role: role, Content: m.Content})
	}

	start := s.now()
	reply, err := s.completer.Complete(ctx, req)
	if err != nil {
		s.logger.Error("chat completion failed", zap.String("board_id", boardID), zap.Error(err))
		return models.ChatFallbackReply, true
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		s.logger.Warn("chat completion returned empty reply", zap.String("board_id", boardID))
		return models.ChatFallbackReply, true
	}

	s.logger.Debug("chat completion",
		zap.String("board_id", boardID),
		zap.Int("history", len(req.History)),
		zap.Duration("elapsed", s.now().Sub(start)))
	return reply, false
}

func (s *ChatServiceImpl) store(ctx context.Context, boardID, sender, content string) (*secondary.ChatMessageRecord, error) {
	record := &secondary.ChatMessageRecord{
		ID:        uuid.NewString(),
		BoardID:   boardID,
		UserID:    ctxutil.UserFromContext(ctx),
		Sender:    sender,
		Content:   content,
		Timestamp: s.now().UTC(),
	}
	if err := s.chatRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}
	return record, nil
}

// ListMessages returns a board's chat history in order.
func (s *ChatServiceImpl) ListMessages(ctx context.Context, boardID string) ([]*models.ChatMessage, error) {
	records, err := s.chatRepo.List(ctx, boardID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	msgs := make([]*models.ChatMessage, len(records))
	for i, r := range records {
		msgs[i] = recordToChatMessage(r)
	}
	return msgs, nil
}

// ClearMessages deletes a board's chat history.
func (s *ChatServiceImpl) ClearMessages(ctx context.Context, boardID string) (int, error) {
	return s.chatRepo.DeleteByBoard(ctx, boardID)
}

// BuildContext summarises a board for the assistant.
func (s *ChatServiceImpl) BuildContext(ctx context.Context, boardID string) (*models.ChatContext, error) {
	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	content, err := s.loader.load(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return chatctx.Build(recordToBoard(board), content.columns, content.tasks, s.now()), nil
}

// Ensure ChatServiceImpl implements the interface
var _ primary.ChatService = (*ChatServiceImpl)(nil)
