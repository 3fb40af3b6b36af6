package fs

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/themepatch"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var _ themepatch.ThemeStore = (*Store)(nil)

// DefaultReadWorkers bounds parallel file reads in ReadAll.
const DefaultReadWorkers = 8

// BackgroundsDir is the theme subdirectory copied by CopyTheme.
const BackgroundsDir = "backgrounds"

// ErrThemesPathMissing is returned when the themes root does not exist.
var ErrThemesPathMissing = errors.New("themes path does not exist")

// Store reads and writes theme directories below a root path.
type Store struct {
	root    string
	workers int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithReadWorkers sets how many files ReadAll reads at once.
func WithReadWorkers(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewStore creates a Store rooted at root. A leading "~" is expanded.
func NewStore(root string, opts ...StoreOption) *Store {
	s := &Store{
		root:    ExpandTilde(root),
		workers: DefaultReadWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the expanded themes directory.
func (s *Store) Root() string {
	return s.root
}

// Themes returns the names of the non-hidden directories below the root.
func (s *Store) Themes() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrThemesPathMissing, s.root)
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Files returns the regular files of a theme, skipping hidden files and
// images.
func (s *Store) Files(theme string) ([]string, error) {
	entries, err := os.ReadDir(s.themeDir(theme))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !editable(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the content of a single theme file.
func (s *Store) Read(theme, file string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.themeDir(theme), file))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadAll reads files in parallel. Files that cannot be read are left out
// of the result.
func (s *Store) ReadAll(theme string, files []string) (map[string]string, error) {
	type result struct {
		content string
		ok      bool
	}
	results := make([]result, len(files))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range files {
		name := files[i]
		g.Go(func() error {
			content, err := s.Read(theme, name)
			if err == nil {
				results[i] = result{content: content, ok: true}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(files))
	for i, r := range results {
		if r.ok {
			out[files[i]] = r.content
		}
	}
	return out, nil
}

// Write replaces the content of a theme file, creating the theme directory
// if needed.
func (s *Store) Write(theme, file, content string) error {
	dir := s.themeDir(theme)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644)
}

// CopyTheme creates dst and copies the backgrounds directory of src into it.
func (s *Store) CopyTheme(src, dst string) error {
	dstDir := s.themeDir(dst)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return err
	}
	from := filepath.Join(s.themeDir(src), BackgroundsDir)
	if _, err := os.Stat(from); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return copyDir(from, filepath.Join(dstDir, BackgroundsDir))
}

// Exists reports whether the theme directory exists.
func (s *Store) Exists(theme string) bool {
	info, err := os.Stat(s.themeDir(theme))
	return err == nil && info.IsDir()
}

func (s *Store) themeDir(theme string) string {
	return filepath.Join(s.root, theme)
}

// editable reports whether a theme file is offered for editing.
func editable(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg":
		return false
	}
	return true
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
