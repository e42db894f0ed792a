package replay

import (
	"encoding/json"

	"github.com/fixturelab/snapcheck/internal/dyn"
	"github.com/fixturelab/snapcheck/internal/fixture"
)

// Config is the neutral replay configuration handed to the runtime under
// test. It is a pure projection of a fixture with no independent lifecycle;
// the field names and nesting are a fixed external contract.
type Config struct {
	Turns         []ConfigTurn             `json:"turns"`
	Tools         []fixture.ToolDescriptor `json:"tools"`
	SystemMessage *SystemMessage           `json:"system_message,omitempty"`
}

// ConfigTurn is one expected exchange in the replay configuration.
type ConfigTurn struct {
	Prompt            string           `json:"prompt"`
	ToolCalls         []ConfigToolCall `json:"tool_calls"`
	AssistantMessages []string         `json:"assistant_messages"`
}

// ConfigToolCall is the id/name/arguments triple for one expected call.
type ConfigToolCall struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Arguments dyn.Object `json:"arguments"`
}

// SystemMessage is the optional top-level system prompt passthrough.
type SystemMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewConfig projects a fixture into its replay configuration.
// Slices are always non-nil so the serialized document carries empty lists,
// never nulls - the runtime's config reader expects lists.
func NewConfig(f *fixture.Fixture) *Config {
	cfg := &Config{
		Turns: make([]ConfigTurn, 0, len(f.Turns)),
		Tools: f.Tools,
	}
	if cfg.Tools == nil {
		cfg.Tools = []fixture.ToolDescriptor{}
	}

	for _, turn := range f.Turns {
		ct := ConfigTurn{
			Prompt:            turn.Prompt,
			ToolCalls:         make([]ConfigToolCall, 0, len(turn.ToolCalls)),
			AssistantMessages: turn.AssistantMessages,
		}
		if ct.AssistantMessages == nil {
			ct.AssistantMessages = []string{}
		}
		for _, call := range turn.ToolCalls {
			args := call.Arguments
			if args == nil {
				args = dyn.Object{}
			}
			ct.ToolCalls = append(ct.ToolCalls, ConfigToolCall{
				ID:        call.ID,
				Name:      call.Name,
				Arguments: args,
			})
		}
		cfg.Turns = append(cfg.Turns, ct)
	}

	if f.SystemMessage != "" {
		cfg.SystemMessage = &SystemMessage{Role: "system", Content: f.SystemMessage}
	}

	return cfg
}

// Marshal serializes the configuration document.
func (c *Config) Marshal() ([]byte, error) {
	return json.Marshal(c)
}
