package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fixturelab/snapcheck/internal/fixture"
)

func TestConfigGolden_ReadBasic(t *testing.T) {
	result, err := fixture.Load(filepath.Join("testdata", "transcripts", "read-basic.yaml"))
	require.NoError(t, err)
	require.False(t, result.Skipped())

	AssertConfigGolden(t, "read-basic", result.Fixture)
}

func TestConfigGolden_DeterministicAcrossParses(t *testing.T) {
	// Parsing the same transcript twice must yield the same golden bytes.
	path := filepath.Join("testdata", "transcripts", "read-basic.yaml")

	first, err := fixture.Load(path)
	require.NoError(t, err)
	second, err := fixture.Load(path)
	require.NoError(t, err)

	AssertConfigGolden(t, "read-basic", first.Fixture)
	AssertConfigGolden(t, "read-basic", second.Fixture)
}
