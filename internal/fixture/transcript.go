package fixture

// Raw transcript document types.
//
// These mirror the external snapshot format exactly: a top-level
// "conversations" list, each holding role-tagged "messages". Only the fields
// the harness models are declared; decoding is lenient because upstream
// transcripts carry many fields outside this contract.

type transcriptDoc struct {
	Conversations []transcriptConversation `yaml:"conversations"`
}

type transcriptConversation struct {
	Messages []transcriptMessage `yaml:"messages"`
}

type transcriptMessage struct {
	Role string `yaml:"role"`

	// Content is usually a string but the format does not guarantee it;
	// non-string content is treated as absent.
	Content any `yaml:"content"`

	// ToolCalls are the invocations declared on an assistant message.
	ToolCalls []transcriptToolCall `yaml:"tool_calls"`

	// ToolCallID correlates a tool-role message with the call it answers.
	ToolCallID string `yaml:"tool_call_id"`
}

type transcriptToolCall struct {
	ID       string             `yaml:"id"`
	Function transcriptFunction `yaml:"function"`
}

type transcriptFunction struct {
	Name string `yaml:"name"`

	// Arguments is a string-encoded JSON object.
	Arguments string `yaml:"arguments"`
}

// text returns the message content when it is a string, otherwise "".
func (m *transcriptMessage) text() string {
	s, _ := m.Content.(string)
	return s
}
