package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Conversation is a sequence of messages exchanged with an LLM
type Conversation []*Message

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append adds a message to the conversation
func (c *Conversation) Append(message Message) {
	*c = append(*c, &message)
}

// AppendWithOutput adds a message to the conversation, attributing the
// input tokens not yet accounted for to the previous message and the output
// tokens to the new message
func (c *Conversation) AppendWithOutput(message Message, input, output uint) {
	tokens := c.Tokens()
	if n := len(*c); n > 0 && input > tokens {
		(*c)[n-1].Tokens += input - tokens
	}

	// Set the output tokens
	message.Tokens = output

	// Append the message
	*c = append(*c, &message)
}

// Truncate drops every message after the first n
func (c *Conversation) Truncate(n int) {
	if n >= 0 && n < len(*c) {
		*c = (*c)[:n]
	}
}

// Last returns the last message in the conversation, or nil
func (c Conversation) Last() *Message {
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}

// Return the total number of tokens in the conversation
func (c Conversation) Tokens() uint {
	total := uint(0)
	for _, msg := range c {
		total += msg.Tokens
	}
	return total
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c Conversation) String() string {
	return types.Stringify(c)
}
