package models

import "time"

// ChatMessage is one turn of a board's assistant conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	UserID    string    `json:"user_id,omitempty"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat senders
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatFallbackReply is stored as the assistant turn when the completer fails.
const ChatFallbackReply = "Sorry, I could not understand your question. Please try again."

// ChatContext is the board summary handed to the assistant.
type ChatContext struct {
	DashboardName string              `json:"dashboardName"`
	Columns       []ChatContextColumn `json:"columns"`
	Stats         ChatContextStats    `json:"stats"`
}

// ChatContextColumn summarises one column.
type ChatContextColumn struct {
	ID    string            `json:"id"`
	Title string            `json:"title"`
	Tasks []ChatContextTask `json:"tasks"`
}

// ChatContextTask summarises one task.
type ChatContextTask struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Date        string            `json:"date,omitempty"`
	Labels      []string          `json:"labels"`
	Checklist   ChecklistProgress `json:"checklist"`
	CreatedAt   int64             `json:"createdAt"`
}

// ChecklistProgress counts top-level checklist entries.
type ChecklistProgress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// ChatContextStats aggregates board statistics.
type ChatContextStats struct {
	TotalTasks        int            `json:"totalTasks"`
	TasksPerColumn    map[string]int `json:"tasksPerColumn"`
	CompletedTasks    int            `json:"completedTasks"`
	UpcomingDeadlines []Deadline     `json:"upcomingDeadlines"`
}

// Deadline is a task title with its due date.
type Deadline struct {
	Task string `json:"task"`
	Date string `json:"date"`
}
