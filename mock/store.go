// Package mock provides test doubles for themepatch interfaces.
package mock

import "github.com/fwojciec/themepatch"

// Compile-time interface verification.
var (
	_ themepatch.ThemeStore  = (*ThemeStore)(nil)
	_ themepatch.ConfigStore = (*ConfigStore)(nil)
)

// ThemeStore is a mock implementation of themepatch.ThemeStore.
type ThemeStore struct {
	ThemesFn    func() ([]string, error)
	FilesFn     func(theme string) ([]string, error)
	ReadFn      func(theme, file string) (string, error)
	ReadAllFn   func(theme string, files []string) (map[string]string, error)
	WriteFn     func(theme, file, content string) error
	CopyThemeFn func(src, dst string) error
	ExistsFn    func(theme string) bool
}

func (s *ThemeStore) Themes() ([]string, error) {
	return s.ThemesFn()
}

func (s *ThemeStore) Files(theme string) ([]string, error) {
	return s.FilesFn(theme)
}

func (s *ThemeStore) Read(theme, file string) (string, error) {
	return s.ReadFn(theme, file)
}

func (s *ThemeStore) ReadAll(theme string, files []string) (map[string]string, error) {
	return s.ReadAllFn(theme, files)
}

func (s *ThemeStore) Write(theme, file, content string) error {
	return s.WriteFn(theme, file, content)
}

func (s *ThemeStore) CopyTheme(src, dst string) error {
	return s.CopyThemeFn(src, dst)
}

func (s *ThemeStore) Exists(theme string) bool {
	return s.ExistsFn(theme)
}

// ConfigStore is a mock implementation of themepatch.ConfigStore.
type ConfigStore struct {
	LoadFn func() (*themepatch.Config, string, error)
	SaveFn func(cfg *themepatch.Config) error
}

func (s *ConfigStore) Load() (*themepatch.Config, string, error) {
	return s.LoadFn()
}

func (s *ConfigStore) Save(cfg *themepatch.Config) error {
	return s.SaveFn(cfg)
}
