package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/fixturelab/snapcheck/internal/dyn"
	"github.com/fixturelab/snapcheck/internal/fixture"
	"github.com/fixturelab/snapcheck/internal/replay"
)

// AssertConfigGolden serializes the fixture's replay configuration in
// canonical form and compares it against testdata/golden/{name}.golden.
//
// Goldens pin the parser end to end: transcript in, configuration bytes
// out. Regenerate with:
//
//	go test ./internal/harness -update
func AssertConfigGolden(t *testing.T, name string, f *fixture.Fixture) {
	t.Helper()

	data, err := replay.NewConfig(f).Marshal()
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}

	// Round-trip through the value model for canonical byte-stable output.
	val, err := dyn.Decode(data)
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	canonical, err := dyn.MarshalCanonical(val)
	if err != nil {
		t.Fatalf("canonicalize config: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, canonical)
}
