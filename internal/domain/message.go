package domain

import "time"

// Action is a side effect the host should perform after rendering the
// message (export a file, move the chat panel, create a campaign record).
type Action struct {
	Type    ActionType
	Payload map[string]string
}

// Message is one turn in the conversation. Messages are immutable once
// appended; history order is Seq (insertion order), not Timestamp, since two
// messages in one turn can share a timestamp.
type Message struct {
	ID               string
	Role             Role
	Text             string
	Timestamp        time.Time
	Seq              int
	SuggestedReplies []string
	Action           *Action
}

// Session is the conversation context: where the workflow stands, the plan
// being edited, and the full message history. Plan is nil only in INIT.
type Session struct {
	ID        string
	Stage     Stage
	Plan      *MediaPlan
	History   []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Append adds a message to history, assigning the next sequence number.
func (s *Session) Append(m Message) Message {
	m.Seq = len(s.History) + 1
	s.History = append(s.History, m)
	return m
}

// LastAgentMessage returns the most recent agent reply, or nil.
func (s *Session) LastAgentMessage() *Message {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleAgent {
			return &s.History[i]
		}
	}
	return nil
}
