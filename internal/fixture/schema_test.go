package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLint_ValidTranscript(t *testing.T) {
	errs := Lint("test.yaml", []byte(basicTranscript))
	assert.Empty(t, errs)
}

func TestLint_UnknownRole(t *testing.T) {
	errs := Lint("test.yaml", []byte(`
conversations:
  - messages:
      - role: narrator
        content: "once upon a time"
`))
	assert.NotEmpty(t, errs)
}

func TestLint_MissingFunctionName(t *testing.T) {
	errs := Lint("test.yaml", []byte(`
conversations:
  - messages:
      - role: assistant
        tool_calls:
          - id: c1
            function:
              arguments: '{}'
`))
	assert.NotEmpty(t, errs)
}

func TestLint_InvalidYAML(t *testing.T) {
	errs := Lint("bad.yaml", []byte("conversations: [unclosed"))
	assert.NotEmpty(t, errs)
	assert.Equal(t, "bad.yaml", errs[0].File)
}

func TestLint_ExtraFieldsTolerated(t *testing.T) {
	// Upstream recorders attach fields outside the modeled contract.
	errs := Lint("test.yaml", []byte(`
version: 3
recorded_at: "2026-01-12"
conversations:
  - id: conv-1
    messages:
      - role: user
        content: "hi"
        timestamp: 12345
`))
	assert.Empty(t, errs)
}
