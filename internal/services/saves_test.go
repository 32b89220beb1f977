package services

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{9}$`)

func TestCreateCodeFormat(t *testing.T) {
	store := NewSaveStore(nil)
	code, err := store.CreateCode()
	require.NoError(t, err)
	assert.Regexp(t, codePattern, code)
}

func TestCreateCodeUniqueness(t *testing.T) {
	store := NewSaveStore(nil)
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		code, err := store.CreateCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := NewSaveStore(nil)
	code, err := store.CreateCode()
	require.NoError(t, err)

	doc := []byte(`{"config":{},"simulator":{}}`)
	require.NoError(t, store.PutPreset(code, "monday", doc))

	got, err := store.GetPreset(code, "monday")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	// Overwrite returns exactly the last write.
	doc2 := []byte(`{"config":{"mode":"classic"},"simulator":{}}`)
	require.NoError(t, store.PutPreset(code, "monday", doc2))
	got, err = store.GetPreset(code, "monday")
	require.NoError(t, err)
	assert.Equal(t, doc2, got)
}

func TestCaseInsensitiveLookup(t *testing.T) {
	store := NewSaveStore(nil)
	code, err := store.CreateCode()
	require.NoError(t, err)
	require.NoError(t, store.PutPreset(code, "slot", []byte("{}")))

	lower := ""
	for _, r := range code {
		if r >= 'A' && r <= 'Z' {
			lower += string(r + 32)
		} else {
			lower += string(r)
		}
	}
	_, err = store.GetPreset(lower, "slot")
	assert.NoError(t, err)
}

func TestUnknownCodeAndPreset(t *testing.T) {
	store := NewSaveStore(nil)

	_, err := store.Get("NOSUCHONE")
	assert.ErrorIs(t, err, ErrCodeNotFound)

	code, err := store.CreateCode()
	require.NoError(t, err)
	_, err = store.GetPreset(code, "missing")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestActivePresetPromotion(t *testing.T) {
	store := NewSaveStore(nil)
	code, err := store.CreateCode()
	require.NoError(t, err)

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, store.PutPreset(code, name, []byte("{}")))
	}

	state, err := store.Get(code)
	require.NoError(t, err)
	assert.Equal(t, "bravo", state.ActivePreset) // last write wins
	require.Len(t, state.Presets, 3)
	assert.Equal(t, "alpha", state.Presets[0].Name) // sorted listing

	// Deleting the active preset promotes the lexicographically smallest
	// remaining slot.
	require.NoError(t, store.DeletePreset(code, "bravo"))
	state, err = store.Get(code)
	require.NoError(t, err)
	assert.Equal(t, "alpha", state.ActivePreset)

	// Deleting a non-active slot leaves the active pointer alone.
	require.NoError(t, store.DeletePreset(code, "charlie"))
	state, err = store.Get(code)
	require.NoError(t, err)
	assert.Equal(t, "alpha", state.ActivePreset)

	// Deleting the last slot clears it.
	require.NoError(t, store.DeletePreset(code, "alpha"))
	state, err = store.Get(code)
	require.NoError(t, err)
	assert.Empty(t, state.ActivePreset)
	assert.Empty(t, state.Presets)
}

func TestListingCarriesTimestamps(t *testing.T) {
	store := NewSaveStore(nil)
	code, err := store.CreateCode()
	require.NoError(t, err)
	require.NoError(t, store.PutPreset(code, "slot", []byte("{}")))

	state, err := store.Get(code)
	require.NoError(t, err)
	require.Len(t, state.Presets, 1)
	created := state.Presets[0].CreatedAt
	assert.False(t, created.IsZero())
	assert.False(t, state.Presets[0].UpdatedAt.IsZero())

	// Overwriting keeps the original creation time.
	require.NoError(t, store.PutPreset(code, "slot", []byte(`{"v":2}`)))
	state, err = store.Get(code)
	require.NoError(t, err)
	assert.Equal(t, created, state.Presets[0].CreatedAt)
	assert.False(t, state.Presets[0].UpdatedAt.Before(created))
}

func TestDeletePresetSecondCallNotFound(t *testing.T) {
	store := NewSaveStore(nil)
	code, err := store.CreateCode()
	require.NoError(t, err)
	require.NoError(t, store.PutPreset(code, "slot", []byte("{}")))

	require.NoError(t, store.DeletePreset(code, "slot"))
	err = store.DeletePreset(code, "slot")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestPutPresetRequiresName(t *testing.T) {
	store := NewSaveStore(nil)
	code, err := store.CreateCode()
	require.NoError(t, err)
	assert.Error(t, store.PutPreset(code, "", []byte("{}")))
}

func TestManyCodesIndependent(t *testing.T) {
	store := NewSaveStore(nil)
	codes := make([]string, 3)
	for i := range codes {
		code, err := store.CreateCode()
		require.NoError(t, err)
		codes[i] = code
		require.NoError(t, store.PutPreset(code, "slot", []byte(fmt.Sprintf(`{"i":%d}`, i))))
	}
	for i, code := range codes {
		got, err := store.GetPreset(code, "slot")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf(`{"i":%d}`, i), string(got))
	}
}
