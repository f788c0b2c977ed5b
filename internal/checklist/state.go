// internal/checklist/state.go
package checklist

import (
	"encoding/json"
	"time"
)

// ItemRecord is the completion record for one checklist item. An item absent
// from the State map is equivalent to {unchecked, ""}; presence signals at
// least one user interaction.
type ItemRecord struct {
	Status    ItemStatus `json:"status"`
	Comment   string     `json:"comment,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// itemRecordWire carries the legacy "pending" spelling on the wire.
type itemRecordWire struct {
	Status    string    `json:"status"`
	Comment   string    `json:"comment,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r ItemRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemRecordWire{
		Status:    WireStatus(r.Status),
		Comment:   r.Comment,
		UpdatedAt: r.UpdatedAt,
	})
}

func (r *ItemRecord) UnmarshalJSON(b []byte) error {
	var w itemRecordWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	r.Status = NormalizeStatus(w.Status)
	r.Comment = w.Comment
	r.UpdatedAt = w.UpdatedAt
	return nil
}

// CustomAmenity is a user-added, inspection-specific checklist entry that is
// never part of the static template. Done is the "addressed" flag progress
// counts; Status is the independent pass/fail outcome.
type CustomAmenity struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Done    bool       `json:"done"`
	Status  ItemStatus `json:"status,omitempty"`
	Comment string     `json:"comment,omitempty"`
}

// State maps item id to completion record for one inspection instance.
type State map[string]ItemRecord

// NewState returns an empty checklist state.
func NewState() State { return State{} }

// SetItem upserts the record for id. Setting unchecked with an empty comment
// removes the entry instead, reverting the item to the implicit untouched
// state; storing an explicit unchecked record would count it toward progress.
func (s State) SetItem(id string, status ItemStatus, comment string) {
	if !status.Valid() {
		status = StatusUnchecked
	}
	if status == StatusUnchecked && comment == "" {
		delete(s, id)
		return
	}
	s[id] = ItemRecord{Status: status, Comment: comment, UpdatedAt: time.Now().UTC()}
}

// Normalize enforces the SetItem invariant on a state built from a raw wire
// map: unchecked records with no comment are removed rather than stored, and
// invalid statuses are coerced to unchecked. Timestamps on surviving records
// are preserved.
func (s State) Normalize() {
	for id, r := range s {
		if !r.Status.Valid() {
			r.Status = StatusUnchecked
		}
		if r.Status == StatusUnchecked && r.Comment == "" {
			delete(s, id)
			continue
		}
		s[id] = r
	}
}

// ItemStatus returns the status for id, unchecked when absent.
func (s State) ItemStatus(id string) ItemStatus {
	if r, ok := s[id]; ok {
		return r.Status
	}
	return StatusUnchecked
}

// ItemComment returns the comment for id, "" when absent.
func (s State) ItemComment(id string) string {
	if r, ok := s[id]; ok {
		return r.Comment
	}
	return ""
}

// Clone returns an independent copy of the state.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
