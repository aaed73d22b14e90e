package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDedupStrategy(t *testing.T) {
	s, err := ParseDedupStrategy("groups")
	require.NoError(t, err)
	require.Equal(t, DedupGroups, s)

	_, err = ParseDedupStrategy("bogus")
	require.Error(t, err)
}

func TestParseConflictStrategy(t *testing.T) {
	s, err := ParseConflictStrategy("rename")
	require.NoError(t, err)
	require.Equal(t, ConflictRename, s)

	_, err = ParseConflictStrategy("bogus")
	require.Error(t, err)
}

func TestParseGSQuality(t *testing.T) {
	q, err := ParseGSQuality("prepress")
	require.NoError(t, err)
	require.Equal(t, GSPrepress, q)

	_, err = ParseGSQuality("bogus")
	require.Error(t, err)
}

func TestDefaultDedupFor(t *testing.T) {
	require.Equal(t, DedupGroups, DefaultDedupFor(ModeGrouped))
	require.Equal(t, DedupStrict, DefaultDedupFor(ModeSingle))
	require.Equal(t, DedupStrict, DefaultDedupFor(ModeSeparate))
}
