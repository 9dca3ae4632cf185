package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dupkeep/pkg/index"
	"github.com/arthur-debert/dupkeep/pkg/types"
)

func rec(fp, name string) *types.Record {
	return &types.Record{Fingerprint: fp, Name: name}
}

func TestInsert_FirstRecordWins(t *testing.T) {
	ix := index.New(false)

	first := rec("abc", "one")
	second := rec("abc", "two")

	assert.True(t, ix.Insert(first))
	assert.False(t, ix.Insert(second))

	got, ok := ix.Lookup("abc")
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, 1, ix.Len())
}

func TestNameCollision(t *testing.T) {
	ix := index.New(true)

	ix.Insert(rec("fp1", "hello"))

	// Same name, different content: collision.
	assert.True(t, ix.NameCollision("hello", "fp2"))
	// Same name, same content: not a collision.
	assert.False(t, ix.NameCollision("hello", "fp1"))
	// Unseen name: not a collision.
	assert.False(t, ix.NameCollision("other", "fp2"))
}

func TestNameCollision_DisabledWithoutTracking(t *testing.T) {
	ix := index.New(false)

	ix.Insert(rec("fp1", "hello"))
	assert.False(t, ix.NameCollision("hello", "fp2"))
}

func TestMissing(t *testing.T) {
	ix := index.New(false)

	seen := &types.Record{Fingerprint: "a", Name: "seen", Stored: true, Seen: true}
	missing1 := &types.Record{Fingerprint: "b", Name: "zeta", Stored: true}
	missing2 := &types.Record{Fingerprint: "c", Name: "alpha", Stored: true}
	fresh := &types.Record{Fingerprint: "d", Name: "fresh"}

	for _, r := range []*types.Record{seen, missing1, missing2, fresh} {
		require.True(t, ix.Insert(r))
	}

	missing := ix.Missing()
	require.Len(t, missing, 2)
	// Sorted by name for stable output.
	assert.Equal(t, "alpha", missing[0].Name)
	assert.Equal(t, "zeta", missing[1].Name)
}
