package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// snapshotFileExtension is the file extension used for snapshot files.
	snapshotFileExtension = ".json"

	// rootFileName names the snapshot for the "/" resource key.
	rootFileName = "root"

	dirPerm  = 0o750
	filePerm = 0o600

	// minTimestampStep keeps successive fetchedAt values strictly increasing.
	minTimestampStep = time.Microsecond
)

// State is the outcome of reading a snapshot.
type State int

const (
	// Absent means no snapshot file exists for the key.
	Absent State = iota
	// Malformed means a file exists but is not a valid snapshot envelope.
	Malformed
	// Found means a valid snapshot was read.
	Found
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Malformed:
		return "malformed"
	case Found:
		return "found"
	default:
		return "unknown"
	}
}

// Lookup is the tagged result of FileStore.Read.
// Snapshot is set only for Found, Err only for Malformed.
type Lookup struct {
	State    State
	Snapshot *Snapshot
	Err      *ParseError
}

// Info describes a snapshot file without its payload.
type Info struct {
	Key       string
	Path      string
	State     State
	FetchedAt time.Time
	Size      int64
}

// FileStore persists one snapshot file per resource key under a directory.
// It exclusively owns the on-disk representation.
type FileStore struct {
	directory string
	now       func() time.Time
}

// NewFileStore returns a store rooted at directory. The directory is created
// lazily on the first write.
func NewFileStore(directory string) (*FileStore, error) {
	if directory == "" {
		return nil, errors.New("snapshot directory cannot be empty")
	}
	return &FileStore{
		directory: directory,
		now:       time.Now,
	}, nil
}

// Directory returns the snapshot directory path.
func (s *FileStore) Directory() string {
	return s.directory
}

// Path returns the file path used for key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.directory, FileName(key))
}

// FileName maps a resource key to its snapshot file name. The mapping is a
// pure function: "/matches/upcoming" -> "matches_upcoming.json".
func FileName(key string) string {
	safeKey := strings.TrimLeft(key, "/")
	safeKey = strings.ReplaceAll(safeKey, "/", "_")
	safeKey = strings.ReplaceAll(safeKey, "\\", "_")
	safeKey = strings.ReplaceAll(safeKey, ":", "_")
	if safeKey == "" {
		safeKey = rootFileName
	}
	return safeKey + snapshotFileExtension
}

// Write serializes payload into a new snapshot for key, replacing any previous
// one wholesale. json.RawMessage payloads are stored byte for byte as received. The returned
// snapshot carries the fetchedAt that was written, which is always later than
// the previous snapshot's for the same key.
func (s *FileStore) Write(key string, payload any) (*Snapshot, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	data, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Key: key, FetchedAt: s.nextTimestamp(key), Data: data}
	encoded, err := snap.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	path := s.Path(key)
	if mkErr := os.MkdirAll(filepath.Dir(path), dirPerm); mkErr != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", mkErr)
	}

	// Write to a temporary file first, then rename for atomicity
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	if _, writeErr := tmp.Write(encoded); writeErr != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to write snapshot: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to write snapshot: %w", closeErr)
	}
	if chErr := os.Chmod(tmpPath, filePerm); chErr != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to write snapshot: %w", chErr)
	}
	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to rename snapshot file: %w", renameErr)
	}

	return snap, nil
}

// Read loads the snapshot for key. A missing file yields Absent, an
// undecodable one Malformed; neither is returned as an error. Other I/O
// failures (permissions, unreadable directory) are returned as errors.
func (s *FileStore) Read(key string) (Lookup, error) {
	if key == "" {
		return Lookup{}, ErrInvalidKey
	}

	path := s.Path(key)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Lookup{State: Absent}, nil
		}
		return Lookup{}, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap Snapshot
	if unmarshalErr := json.Unmarshal(raw, &snap); unmarshalErr != nil {
		return Lookup{State: Malformed, Err: &ParseError{Path: path, Err: unmarshalErr}}, nil
	}
	snap.Key = key
	return Lookup{State: Found, Snapshot: &snap}, nil
}

// Stat describes the snapshot for key without returning its payload.
func (s *FileStore) Stat(key string) (Info, error) {
	info := Info{Key: key, Path: s.Path(key)}

	lookup, err := s.Read(key)
	if err != nil {
		return info, err
	}
	info.State = lookup.State
	if lookup.State == Absent {
		return info, nil
	}

	if fi, statErr := os.Stat(info.Path); statErr == nil {
		info.Size = fi.Size()
	}
	if lookup.Snapshot != nil {
		info.FetchedAt = lookup.Snapshot.FetchedAt
	}
	return info, nil
}

// nextTimestamp returns the current time, nudged forward if needed so it is
// strictly after the timestamp already on disk for key.
func (s *FileStore) nextTimestamp(key string) time.Time {
	now := s.now().UTC()
	prev, err := s.Read(key)
	if err != nil || prev.State != Found {
		return now
	}
	if !now.After(prev.Snapshot.FetchedAt) {
		return prev.Snapshot.FetchedAt.Add(minTimestampStep).UTC()
	}
	return now
}

func encodePayload(payload any) (json.RawMessage, error) {
	if raw, ok := payload.(json.RawMessage); ok {
		if !json.Valid(raw) {
			return nil, errors.New("payload is not valid JSON")
		}
		return raw, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return data, nil
}
