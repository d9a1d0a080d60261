package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// FileStore keeps each session as {id}.json in a directory. It is safe for
// concurrent use within a process.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

var _ schema.SessionStore = (*FileStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	jsonExt              = ".json"
	DirPerm  os.FileMode = 0o700 // Permission for the store directory
	FilePerm os.FileMode = 0o600 // Permission for session files
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewFileStore creates a file-backed session store in the given directory,
// which is created if it does not exist
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, meteo.ErrBadParameter.With("directory is required")
	}
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return nil, meteo.ErrInternalServerError.Withf("mkdir: %v", err)
	}
	return &FileStore{dir: dir}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Create creates a new session with a unique ID, writes it to disk and
// returns it
func (f *FileStore) Create(_ context.Context, meta schema.SessionMeta) (*schema.Session, error) {
	s, err := newSession(meta)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.write(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get reads a session by ID
func (f *FileStore) Get(_ context.Context, id string) (*schema.Session, error) {
	if err := validateId(id); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.read(id)
}

// List returns sessions, most recently modified first. Unreadable files are
// skipped.
func (f *FileStore) List(_ context.Context, req schema.ListSessionRequest) (*schema.ListSessionResponse, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, meteo.ErrInternalServerError.Withf("readdir: %v", err)
	}
	result := make([]*schema.Session, 0, len(entries))
	for _, entry := range entries {
		id, isJSON := strings.CutSuffix(entry.Name(), jsonExt)
		if entry.IsDir() || !isJSON || validateId(id) != nil {
			continue
		}
		if s, err := f.read(id); err == nil {
			result = append(result, s)
		}
	}
	return list(result, req), nil
}

// Delete removes a session file by ID
func (f *FileStore) Delete(_ context.Context, id string) error {
	if err := validateId(id); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path(id)); os.IsNotExist(err) {
		return meteo.ErrNotFound.Withf("session %q", id)
	} else if err != nil {
		return meteo.ErrInternalServerError.Withf("remove: %v", err)
	}
	return nil
}

// Write persists the session and updates its modified time. The session
// must have been created by this store and not deleted.
func (f *FileStore) Write(s *schema.Session) error {
	if s == nil {
		return meteo.ErrBadParameter.With("session is required")
	}
	if err := validateId(s.ID); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := os.Stat(f.path(s.ID)); os.IsNotExist(err) {
		return meteo.ErrNotFound.Withf("session %q", s.ID)
	}
	s.Modified = time.Now()
	return f.write(s)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (f *FileStore) path(id string) string {
	return filepath.Join(f.dir, id+jsonExt)
}

// write serialises a session through a temporary file and renames it into
// place, so readers never see a partial session
func (f *FileStore) write(s *schema.Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return meteo.ErrInternalServerError.Withf("marshal: %v", err)
	}
	tmp, err := os.CreateTemp(f.dir, "."+s.ID+"-*")
	if err != nil {
		return meteo.ErrInternalServerError.Withf("write: %v", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return meteo.ErrInternalServerError.Withf("write: %v", err)
	}
	if err := tmp.Chmod(FilePerm); err != nil {
		tmp.Close()
		return meteo.ErrInternalServerError.Withf("chmod: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return meteo.ErrInternalServerError.Withf("write: %v", err)
	}
	if err := os.Rename(tmp.Name(), f.path(s.ID)); err != nil {
		return meteo.ErrInternalServerError.Withf("rename: %v", err)
	}
	return nil
}

func (f *FileStore) read(id string) (*schema.Session, error) {
	data, err := os.ReadFile(f.path(id))
	if os.IsNotExist(err) {
		return nil, meteo.ErrNotFound.Withf("session %q", id)
	} else if err != nil {
		return nil, meteo.ErrInternalServerError.Withf("read: %v", err)
	}
	var s schema.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, meteo.ErrInternalServerError.Withf("unmarshal: %v", err)
	}
	return &s, nil
}
