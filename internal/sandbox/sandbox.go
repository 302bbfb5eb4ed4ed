// Package sandbox confines filesystem access to a single workspace root.
// Every resolved path is either the root itself or has the root followed by
// the platform separator as a prefix; anything else is rejected. The
// filesystem is abstracted behind afero so tests can run against an
// in-memory tree.
package sandbox

// file: internal/sandbox/sandbox.go

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/evasystems/eva-mcp/internal/logging"
	"github.com/spf13/afero"
)

// EnvWorkspace names the environment variable consulted when no explicit
// workspace root is configured.
const EnvWorkspace = "EVA_MCP_WORKSPACE"

// DefaultMaxList is the listing cap applied when the caller passes none.
const DefaultMaxList = 1000

// ErrPathOutsideWorkspace marks a containment violation: the requested path
// resolves outside the workspace root.
var ErrPathOutsideWorkspace = errors.New("path outside workspace")

// ErrNotAFile marks a read of something other than a regular file.
var ErrNotAFile = errors.New("not a regular file")

// FileContent is the result of reading a workspace file: the caller's
// original relative path and the file's UTF-8 contents.
type FileContent struct {
	Path    string
	Content string
}

// Sandbox resolves, lists, and reads paths under a fixed workspace root.
type Sandbox struct {
	fs     afero.Fs
	root   string
	logger logging.Logger
}

// New creates a sandbox rooted at root. An empty root falls back to the
// EVA_MCP_WORKSPACE environment variable, then to the process working
// directory. The root is resolved to an absolute cleaned path once and
// retained for all containment checks.
func New(fs afero.Fs, root string, logger logging.Logger) (*Sandbox, error) {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if root == "" {
		root = os.Getenv(EnvWorkspace)
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to determine working directory for workspace root")
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve workspace root %q", root)
	}
	s := &Sandbox{
		fs:     fs,
		root:   filepath.Clean(abs),
		logger: logger.WithField("component", "sandbox"),
	}
	s.logger.Info("Workspace sandbox created.", "root", s.root)
	return s, nil
}

// Root returns the absolute workspace root.
func (s *Sandbox) Root() string {
	return s.root
}

// Resolve joins rel against the workspace root and returns the absolute
// path, failing with ErrPathOutsideWorkspace when the resolved form escapes
// the root. The check runs on the resolved path, never on the lexical
// concatenation, so ".." segments cannot slip through. Both forward and
// backward slashes are accepted as separators in rel.
func (s *Sandbox) Resolve(rel string) (string, error) {
	normalized := strings.ReplaceAll(rel, "\\", "/")
	joined := filepath.Join(s.root, filepath.FromSlash(normalized))
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve path %q", rel)
	}
	abs = filepath.Clean(abs)
	if abs != s.root && !strings.HasPrefix(abs, s.root+string(filepath.Separator)) {
		return "", errors.Wrapf(ErrPathOutsideWorkspace, "path %q resolves to %q", rel, abs)
	}
	return abs, nil
}

// List walks the workspace depth-first and returns up to max relative paths
// of regular files. Directory order is whatever the filesystem yields;
// callers must not depend on it. max values below one fall back to
// DefaultMaxList.
func (s *Sandbox) List(max int) ([]string, error) {
	if max < 1 {
		max = DefaultMaxList
	}
	var entries []string
	errStop := errors.New("listing limit reached")
	walkErr := afero.Walk(s.fs, s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return relErr
		}
		entries = append(entries, rel)
		if len(entries) >= max {
			return errStop
		}
		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, errStop) {
		return nil, errors.Wrap(walkErr, "failed to walk workspace")
	}
	return entries, nil
}

// Read resolves rel with the containment check, requires a regular file, and
// returns the original relative path with the file's contents.
func (s *Sandbox) Read(rel string) (*FileContent, error) {
	abs, err := s.Resolve(rel)
	if err != nil {
		return nil, err
	}
	info, err := s.fs.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %q", rel)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Wrapf(ErrNotAFile, "%q", rel)
	}
	data, err := afero.ReadFile(s.fs, abs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", rel)
	}
	return &FileContent{Path: rel, Content: string(data)}, nil
}
