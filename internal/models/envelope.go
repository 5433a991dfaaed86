package models

import "fmt"

// Envelope carries conversation state between turns. The server never
// stores it: the caller receives it with every reply and sends it back
// with the next query. An Envelope an earlier turn produced can always
// be replayed safely.
type Envelope struct {
	ConversationID   string    `json:"conversationId,omitempty"`
	Intent           Intent    `json:"intent,omitempty"`
	Slots            TaskSlots `json:"slots"`
	AwaitingInput    bool      `json:"awaitingInput"`
	FollowUpQuestion string    `json:"followUpQuestion,omitempty"`
	InProgressTaskID string    `json:"inProgressTaskId,omitempty"`
}

// NewEnvelope returns the envelope for the first turn of a conversation.
func NewEnvelope() *Envelope {
	return &Envelope{Slots: EmptySlots()}
}

// Continuing reports whether this envelope represents a conversation
// already in flight: either a question was asked, or slots have been
// collected. A nil envelope is never continuing.
func (e *Envelope) Continuing() bool {
	if e == nil {
		return false
	}
	return e.AwaitingInput || !e.Slots.IsEmpty()
}

// Valid checks the envelope invariant: awaiting input requires a
// follow-up question, and a question is only present while awaiting.
func (e *Envelope) Valid() error {
	if e.AwaitingInput && e.FollowUpQuestion == "" {
		return fmt.Errorf("envelope awaiting input without a follow-up question")
	}
	if !e.AwaitingInput && e.FollowUpQuestion != "" {
		return fmt.Errorf("envelope carries a follow-up question but is not awaiting input")
	}
	return nil
}
