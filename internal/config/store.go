package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/atomic"

	"github.com/lc/yamlnode/internal/document"
	"github.com/lc/yamlnode/internal/filesys"
	"github.com/lc/yamlnode/internal/log"
	"github.com/lc/yamlnode/internal/node"
)

const (
	_dirPerm  = 0o755
	_filePerm = 0o644
)

// Store binds one YAML file to a root node. It owns the file path; callers
// read and write configuration through Root and persist it with Save.
type Store struct {
	fs   filesys.FS
	path string

	writeDefaults bool
	encode        document.Options

	mu       sync.RWMutex // protects root and pristine
	root     *node.Node
	pristine *node.Mapping // copy of the last loaded or saved document

	loads atomic.Int64 // successful loads
}

// Option configures a Store.
type Option func(*Store)

// WithWriteDefaults sets the write-defaults flag of every root the store
// creates.
func WithWriteDefaults(on bool) Option {
	return func(s *Store) { s.writeDefaults = on }
}

// WithFormat sets the layout used by Save.
func WithFormat(f document.Format) Option {
	return func(s *Store) { s.encode.Format = f }
}

// WithIndent sets the indentation used by Save.
func WithIndent(n int) Option {
	return func(s *Store) { s.encode.Indent = n }
}

// WithHeader sets the comment block Save writes above the document.
func WithHeader(h string) Option {
	return func(s *Store) { s.encode.Header = h }
}

// New creates a store for path. The root is empty until Load is called.
func New(fsys filesys.FS, path string, opts ...Option) *Store {
	s := &Store{
		fs:       fsys,
		path:     path,
		encode:   document.Options{Format: document.Extended, Indent: document.DefaultIndent},
		pristine: node.NewMapping(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.root = node.New(nil, s.writeDefaults)
	return s
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Root returns the current root node. Load replaces it; nodes obtained
// before a reload keep referring to the old document.
func (s *Store) Root() *node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// Load reads and decodes the file, replacing the root. A missing file
// yields an empty root. On error the previous root is kept.
func (s *Store) Load() error {
	if err := s.ensureDir(); err != nil {
		log.Debug("config: could not create directory", "path", s.path, "error", err)
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.replace(node.NewMapping())
			return nil
		}
		return fmt.Errorf("reading %s: %w", s.path, err)
	}

	m, err := document.Decode(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", s.path, err)
	}
	s.replace(m)
	s.loads.Inc()
	log.Debug("config: loaded", "path", s.path, "keys", m.Len())
	return nil
}

// Loads returns how many times the file has been read successfully,
// counting reloads triggered by Watch.
func (s *Store) Loads() int64 { return s.loads.Load() }

// Encode renders the root the way Save would write it.
func (s *Store) Encode() ([]byte, error) {
	return document.Encode(s.Root().Map(), s.encode)
}

// Save encodes the root and writes it atomically.
func (s *Store) Save() error {
	root := s.Root()
	data, err := document.Encode(root.Map(), s.encode)
	if err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := filesys.AtomicWrite(s.fs, s.path, data, _filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.pristine = root.Map().Clone()
	s.mu.Unlock()
	return nil
}

// Modified reports whether the root differs from what was last loaded or
// saved, for example after defaults were written back.
func (s *Store) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.root.Map().Equal(s.pristine)
}

// SaveIfModified saves only when Modified reports true.
func (s *Store) SaveIfModified() (bool, error) {
	if !s.Modified() {
		return false, nil
	}
	return true, s.Save()
}

// CreateDefault writes data to the store's path unless a file is already
// there. It reports whether the file was written.
func (s *Store) CreateDefault(data []byte) (bool, error) {
	if err := s.ensureDir(); err != nil {
		return false, err
	}
	if _, err := s.fs.Stat(s.path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking %s: %w", s.path, err)
	}

	if err := filesys.AtomicWrite(s.fs, s.path, data, _filePerm); err != nil {
		return false, fmt.Errorf("writing default %s: %w", s.path, err)
	}
	log.Info("default configuration written", "path", s.path)
	return true, nil
}

func (s *Store) replace(m *node.Mapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = node.New(m, s.writeDefaults)
	s.pristine = m.Clone()
}

func (s *Store) ensureDir() error {
	dir := filepath.Dir(s.path)
	if _, err := s.fs.Stat(dir); os.IsNotExist(err) {
		if err := s.fs.MkdirAll(dir, _dirPerm); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	return nil
}
