package model

import "strings"

// Conversation is the ordered, append-only turn log of the current session.
// Insertion order is display order.
type Conversation struct {
	turns []Message
}

func NewConversation() *Conversation {
	return &Conversation{}
}

func (c *Conversation) Append(msg Message) {
	c.turns = append(c.turns, msg)
}

// Reset discards every turn.
func (c *Conversation) Reset() {
	c.turns = nil
}

func (c *Conversation) Len() int {
	return len(c.turns)
}

// Turns returns a copy of the stored turns.
func (c *Conversation) Turns() []Message {
	out := make([]Message, len(c.turns))
	copy(out, c.turns)
	return out
}

// PromptText builds the single-shot prompt used by generate and code modes:
// every stored turn's content joined by newlines, followed by prompt.
// With an empty conversation the prompt stands alone.
func (c *Conversation) PromptText(prompt string) string {
	if len(c.turns) == 0 {
		return prompt
	}

	var b strings.Builder
	for _, t := range c.turns {
		b.WriteString(t.Content)
		b.WriteByte('\n')
	}
	b.WriteString(prompt)
	return b.String()
}

// Messages returns role/content pairs in insertion order for chat requests.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.turns))
	for i, t := range c.turns {
		out[i] = Message{Role: t.Role, Content: t.Content}
	}
	return out
}

// LastAssistant returns the most recent assistant turn, if any.
func (c *Conversation) LastAssistant() (Message, bool) {
	for i := len(c.turns) - 1; i >= 0; i-- {
		if c.turns[i].Role == RoleAssistant {
			return c.turns[i], true
		}
	}
	return Message{}, false
}
