package fixture

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fixturelab/snapcheck/internal/dyn"
)

// Reserved placeholder tokens in the transcript format.
//
// These are literal string conventions of the upstream snapshot recorder,
// not a grammar: the system placeholder is matched exactly, pseudo-tools by
// prefix. Do not generalize beyond what the format actually emits.
const (
	// SystemPlaceholder marks an injected system prompt recorded as a user
	// message. It is not a real user turn.
	SystemPlaceholder = "${system}"

	// placeholderPrefix marks runtime-injected pseudo-tools like "${shell}".
	placeholderPrefix = "${"
)

// Skip reasons attached to Result when no fixture is produced.
const (
	SkipMalformed       = "malformed transcript"
	SkipNoConversations = "no conversations"
	SkipNoTurns         = "no user turns"
)

// Result is the outcome of parsing one transcript.
//
// Exactly one of Fixture or Skip is set. Callers branch mechanically:
// a skip is not an error and must never abort the run.
type Result struct {
	// Fixture is the parsed test case, nil when the transcript was skipped.
	Fixture *Fixture

	// Skip explains why no fixture was produced, empty otherwise.
	Skip string

	// Detail carries the underlying cause for diagnostics (may be empty).
	Detail string
}

// Skipped reports whether the transcript produced no usable fixture.
func (r Result) Skipped() bool {
	return r.Fixture == nil
}

// Parse converts raw transcript bytes into a Fixture.
//
// Only the first conversation is consulted. Messages are walked in order,
// maintaining a current turn: user messages open turns (unless they are the
// system placeholder), assistant messages contribute tool calls and text to
// the current turn, tool messages resolve recorded results by correlation
// id. A transcript yielding zero turns is a skip, not an error.
func Parse(name, sourcePath string, data []byte) Result {
	var doc transcriptDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Result{Skip: SkipMalformed, Detail: err.Error()}
	}

	if len(doc.Conversations) == 0 {
		return Result{Skip: SkipNoConversations}
	}

	var (
		turns         []*TurnExpectation
		currentTurn   *TurnExpectation
		allCalls      []*ToolCallExpectation
		callsByID     = make(map[string]*ToolCallExpectation)
		systemMessage string
	)

	for i := range doc.Conversations[0].Messages {
		msg := &doc.Conversations[0].Messages[i]

		switch msg.Role {
		case "user":
			content := msg.text()
			if content == SystemPlaceholder {
				continue
			}
			currentTurn = &TurnExpectation{Prompt: content}
			turns = append(turns, currentTurn)

		case "assistant":
			for _, tc := range msg.ToolCalls {
				if strings.HasPrefix(tc.Function.Name, placeholderPrefix) {
					continue
				}
				call := &ToolCallExpectation{
					ID:        tc.ID,
					Name:      tc.Function.Name,
					Arguments: decodeArguments(tc.Function.Arguments),
				}
				callsByID[call.ID] = call
				allCalls = append(allCalls, call)
				if currentTurn != nil {
					currentTurn.ToolCalls = append(currentTurn.ToolCalls, call)
				}
			}
			if content := strings.TrimSpace(msg.text()); content != "" && currentTurn != nil {
				currentTurn.AssistantMessages = append(currentTurn.AssistantMessages, msg.text())
			}

		case "tool":
			// Second pass of the two-pass result resolution: the transcript
			// may reference calls outside the modeled window, so a missing
			// id is silently ignored.
			if call, ok := callsByID[msg.ToolCallID]; ok {
				call.Result = msg.text()
			}

		case "system":
			// Rare: some transcripts record the literal system prompt instead
			// of the ${system} placeholder. First one wins.
			if systemMessage == "" {
				systemMessage = msg.text()
			}
		}
	}

	if len(turns) == 0 {
		return Result{Skip: SkipNoTurns}
	}

	return Result{Fixture: &Fixture{
		Name:          name,
		SourcePath:    sourcePath,
		Turns:         turns,
		Tools:         synthesizeCatalog(allCalls),
		SystemMessage: systemMessage,
	}}
}

// decodeArguments parses a string-encoded JSON argument payload.
// Decode failure degrades to an empty mapping rather than failing the
// fixture: the call is still a named expectation worth validating.
func decodeArguments(raw string) dyn.Object {
	if raw == "" {
		return dyn.Object{}
	}
	args, err := dyn.DecodeObject([]byte(raw))
	if err != nil {
		return dyn.Object{}
	}
	return args
}
