package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// Snapshot is a timestamped copy of the payload fetched for one resource key.
type Snapshot struct {
	// Key is the resource key the snapshot belongs to. It is not persisted.
	Key string `json:"-"`

	// FetchedAt is assigned when the snapshot is written.
	FetchedAt time.Time `json:"fetchedAt"`

	// Data is the payload exactly as it was received.
	Data json.RawMessage `json:"data"`
}

// Age returns how long ago the snapshot was fetched, relative to now.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// IsFresh reports whether the snapshot is younger than cooldown at now.
// A zero or negative cooldown is never fresh.
func (s *Snapshot) IsFresh(now time.Time, cooldown time.Duration) bool {
	return cooldown > 0 && s.Age(now) < cooldown
}

// envelopeOverhead is the size of the fixed envelope text around the fields.
const envelopeOverhead = 32

var (
	errMissingTimestamp = errors.New("missing fetchedAt field")
	errMissingData      = errors.New("missing data field")
)

// Encode returns the on-disk envelope. Data is copied byte for byte, so a
// payload keeps the formatting it was received with. FetchedAt is written with
// nanosecond precision so successive writes within the same second still order
// correctly.
func (s Snapshot) Encode() ([]byte, error) {
	data := s.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	fetchedAt, err := json.Marshal(s.FetchedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(data) + len(fetchedAt) + envelopeOverhead)
	buf.WriteString(`{"fetchedAt":`)
	buf.Write(fetchedAt)
	buf.WriteString(`,"data":`)
	buf.Write(data)
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// MarshalJSON encodes the same envelope as Encode, without the newline.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	b, err := s.Encode()
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(b, "\n"), nil
}

// UnmarshalJSON requires both envelope fields to be present.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	if s == nil {
		return errors.New("cannot unmarshal into nil Snapshot")
	}
	var aux struct {
		FetchedAt *string         `json:"fetchedAt"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.FetchedAt == nil {
		return errMissingTimestamp
	}
	if len(aux.Data) == 0 {
		return errMissingData
	}

	fetchedAt, err := time.Parse(time.RFC3339Nano, *aux.FetchedAt)
	if err != nil {
		return err
	}
	s.FetchedAt = fetchedAt
	s.Data = aux.Data
	return nil
}
