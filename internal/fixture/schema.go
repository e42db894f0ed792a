package fixture

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed transcript.cue
var transcriptSchema string

// LintError describes one schema violation found in a transcript file.
type LintError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

func (e *LintError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Lint checks raw transcript bytes against the embedded CUE schema.
//
// This is a strict up-front check for authoring feedback; the run path never
// depends on it. Parse stays lenient, so a transcript that fails Lint may
// still parse into a usable fixture.
func Lint(filename string, data []byte) []LintError {
	ctx := cuecontext.New()

	schema := ctx.CompileString(transcriptSchema, cue.Filename("transcript.cue"))
	if err := schema.Err(); err != nil {
		// The schema is embedded and fixed; a compile failure is a bug.
		return []LintError{{File: filename, Message: fmt.Sprintf("internal schema error: %v", err)}}
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return []LintError{{File: filename, Message: fmt.Sprintf("not valid YAML: %v", err)}}
	}

	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return []LintError{{File: filename, Message: err.Error()}}
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var lintErrs []LintError
		for _, e := range cueerrors.Errors(err) {
			lintErrs = append(lintErrs, LintError{File: filename, Message: e.Error()})
		}
		return lintErrs
	}

	return nil
}
