package checklist

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetItemUncheckedRemoves(t *testing.T) {
	st := NewState()
	st.SetItem("ext-1", StatusPass, "")
	assert.Len(t, st, 1)

	// reverting to unchecked with no comment clears the entry entirely,
	// so it no longer counts toward progress
	st.SetItem("ext-1", StatusUnchecked, "")
	assert.Empty(t, st)
	assert.Equal(t, StatusUnchecked, st.ItemStatus("ext-1"))

	// doing it again is a no-op, not an error
	st.SetItem("ext-1", StatusUnchecked, "")
	assert.Empty(t, st)
}

func TestSetItemUncheckedWithCommentStays(t *testing.T) {
	st := NewState()
	st.SetItem("ext-1", StatusUnchecked, "revisit after rain")
	assert.Len(t, st, 1)
	assert.Equal(t, "revisit after rain", st.ItemComment("ext-1"))
}

func TestSetItemInvalidStatusCoerced(t *testing.T) {
	st := NewState()
	st.SetItem("ext-1", ItemStatus("bogus"), "note")
	assert.Equal(t, StatusUnchecked, st.ItemStatus("ext-1"))
}

func TestItemRecordWirePending(t *testing.T) {
	// stored unchecked goes out as the legacy "pending" spelling
	out, err := json.Marshal(ItemRecord{Status: StatusUnchecked, Comment: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"status":"pending"`)

	// and "pending" coming in lands as unchecked
	var rec ItemRecord
	require.NoError(t, json.Unmarshal([]byte(`{"status":"pending"}`), &rec))
	assert.Equal(t, StatusUnchecked, rec.Status)

	// unknown statuses normalize rather than error
	require.NoError(t, json.Unmarshal([]byte(`{"status":"???"}`), &rec))
	assert.Equal(t, StatusUnchecked, rec.Status)

	// pass/fail/na survive a round trip unchanged
	for _, s := range []ItemStatus{StatusPass, StatusFail, StatusNA} {
		b, err := json.Marshal(ItemRecord{Status: s})
		require.NoError(t, err)
		var back ItemRecord
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, s, back.Status)
	}
}

func TestNormalizeDropsUntouchedRecords(t *testing.T) {
	now := time.Now().UTC()
	st := State{
		"ext-roof":    {Status: StatusUnchecked, Comment: "", UpdatedAt: now},
		"ext-gutters": {Status: StatusUnchecked, Comment: "revisit", UpdatedAt: now},
		"int-walls":   {Status: ItemStatus("bogus"), Comment: "", UpdatedAt: now},
		"saf-smoke":   {Status: StatusPass, Comment: "", UpdatedAt: now},
	}
	st.Normalize()

	// explicit untouched records disappear, whether spelled unchecked
	// or with a status the enum does not know
	assert.NotContains(t, st, "ext-roof")
	assert.NotContains(t, st, "int-walls")

	// commented and completed entries survive with timestamps intact
	require.Contains(t, st, "ext-gutters")
	assert.Equal(t, now, st["ext-gutters"].UpdatedAt)
	assert.Equal(t, StatusPass, st["saf-smoke"].Status)
}

func TestStateClone(t *testing.T) {
	st := NewState()
	st.SetItem("a", StatusPass, "")
	cp := st.Clone()
	cp.SetItem("b", StatusFail, "")
	assert.Len(t, st, 1)
	assert.Len(t, cp, 2)
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusUnchecked, NormalizeStatus("pending"))
	assert.Equal(t, StatusUnchecked, NormalizeStatus(""))
	assert.Equal(t, StatusPass, NormalizeStatus("pass"))
	assert.Equal(t, "pending", WireStatus(StatusUnchecked))
	assert.Equal(t, "fail", WireStatus(StatusFail))
}
