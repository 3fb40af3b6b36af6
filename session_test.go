package themepatch_test

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/fwojciec/themepatch"
	"github.com/fwojciec/themepatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore returns a ThemeStore double backed by a theme -> file -> content
// map. Writes go to the same map.
func memStore(themes map[string]map[string]string) *mock.ThemeStore {
	return &mock.ThemeStore{
		ThemesFn: func() ([]string, error) {
			var names []string
			for name := range themes {
				names = append(names, name)
			}
			sort.Strings(names)
			return names, nil
		},
		FilesFn: func(theme string) ([]string, error) {
			var names []string
			for name := range themes[theme] {
				names = append(names, name)
			}
			sort.Strings(names)
			return names, nil
		},
		ReadFn: func(theme, file string) (string, error) {
			content, ok := themes[theme][file]
			if !ok {
				return "", errors.New("missing")
			}
			return content, nil
		},
		ReadAllFn: func(theme string, files []string) (map[string]string, error) {
			out := make(map[string]string)
			for _, f := range files {
				out[f] = themes[theme][f]
			}
			return out, nil
		},
		WriteFn: func(theme, file, content string) error {
			themes[theme][file] = content
			return nil
		},
		CopyThemeFn: func(src, dst string) error {
			themes[dst] = map[string]string{}
			return nil
		},
		ExistsFn: func(theme string) bool {
			_, ok := themes[theme]
			return ok
		},
	}
}

func openSession(t *testing.T, themes map[string]map[string]string, theme, file string, opts ...themepatch.SessionOption) *themepatch.Session {
	t.Helper()
	s := themepatch.NewSession(memStore(themes), nil, opts...)
	_, err := s.OpenTheme(theme, themepatch.SortByName)
	require.NoError(t, err)
	if file != "" {
		require.NoError(t, s.OpenFile(file))
	}
	return s
}

func TestSession_Themes(t *testing.T) {
	t.Parallel()

	t.Run("lists themes with most recently opened first", func(t *testing.T) {
		t.Parallel()

		themes := map[string]map[string]string{"a": {}, "b": {}, "c": {}}
		s := themepatch.NewSession(memStore(themes), nil)
		_, err := s.OpenTheme("b", themepatch.SortByName)
		require.NoError(t, err)

		got, err := s.Themes(themepatch.SortByLastOpened)

		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "c"}, got)
	})

	t.Run("sets the error slot when no themes exist", func(t *testing.T) {
		t.Parallel()

		s := themepatch.NewSession(memStore(map[string]map[string]string{}), nil)

		_, err := s.Themes(themepatch.SortByName)

		require.ErrorIs(t, err, themepatch.ErrNoThemes)
		assert.ErrorIs(t, s.LastError(), themepatch.ErrNoThemes)
	})

	t.Run("wraps store errors", func(t *testing.T) {
		t.Parallel()

		store := &mock.ThemeStore{ThemesFn: func() ([]string, error) {
			return nil, errors.New("path does not exist")
		}}
		s := themepatch.NewSession(store, nil)

		_, err := s.Themes(themepatch.SortByName)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "path does not exist")
	})
}

func TestSession_OpenFile(t *testing.T) {
	t.Parallel()

	t.Run("scans the cached content", func(t *testing.T) {
		t.Parallel()

		s := openSession(t, map[string]map[string]string{
			"dark": {"waybar.css": "a { color: #fff; }\n"},
		}, "dark", "waybar.css")

		assert.Equal(t, "waybar.css", s.File())
		require.Len(t, s.Literals(), 1)
		assert.Equal(t, "#fff", s.Literals()[0].Text)
		assert.False(t, s.Dirty())
	})

	t.Run("rejects disabled extensions", func(t *testing.T) {
		t.Parallel()

		s := openSession(t, map[string]map[string]string{
			"dark": {"preview.png": "binary"},
		}, "dark", "")

		err := s.OpenFile("preview.png")

		require.ErrorIs(t, err, themepatch.ErrExtensionDisabled)
		assert.Equal(t, "color parsing disabled for .png", err.Error())
		assert.Equal(t, err, s.LastError())
		assert.Empty(t, s.File())
	})

	t.Run("requires an open theme", func(t *testing.T) {
		t.Parallel()

		s := themepatch.NewSession(memStore(nil), nil)

		assert.ErrorIs(t, s.OpenFile("a.css"), themepatch.ErrNoTheme)
	})
}

func TestSession_ConfirmEdit(t *testing.T) {
	t.Parallel()

	t.Run("writes the colour in the literal's own format", func(t *testing.T) {
		t.Parallel()

		s := openSession(t, map[string]map[string]string{
			"dark": {"a.css": "x { c: rgba(0, 0, 0, 1); d: #000000; }\n"},
		}, "dark", "a.css")

		edit, err := s.StartEdit("0_28")
		require.NoError(t, err)
		assert.Equal(t, themepatch.Hex6, edit.Format)

		text, err := s.ConfirmEdit(themepatch.RGB(0x12, 0x34, 0x56))

		require.NoError(t, err)
		assert.Equal(t, "#123456", text)
		assert.Equal(t, "x { c: rgba(0, 0, 0, 1); d: #123456; }\n", s.Content())
		assert.True(t, s.Dirty())
		assert.Equal(t, map[string]string{"0_28": "#123456"}, s.Modified())
		_, pending := s.Pending()
		assert.False(t, pending)
	})

	t.Run("keeps tracking literals shifted by an earlier edit", func(t *testing.T) {
		t.Parallel()

		s := openSession(t, map[string]map[string]string{
			"dark": {"a.css": "a #fff #000\n"},
		}, "dark", "a.css")

		_, err := s.StartEdit("0_2")
		require.NoError(t, err)
		_, err = s.ConfirmEdit(themepatch.RGB(1, 2, 3))
		require.NoError(t, err)
		// "#fff" became "#000" through the lossy short form, same length.
		require.Equal(t, "a #000 #000\n", s.Content())

		_, err = s.StartEdit("0_7")
		require.NoError(t, err)
		_, err = s.ConfirmEdit(themepatch.RGB(17, 34, 51))
		require.NoError(t, err)

		assert.Equal(t, "a #000 #123\n", s.Content())
		assert.True(t, s.IsModified("0_2"))
		assert.True(t, s.IsModified("0_7"))
		assert.Equal(t, map[string]string{"0_2": "#000", "0_7": "#123"}, s.Modified())
	})

	t.Run("maps ids after a length changing edit", func(t *testing.T) {
		t.Parallel()

		s := openSession(t, map[string]map[string]string{
			"dark": {"a.css": "a rgb(1, 2, 3) #000000\n"},
		}, "dark", "a.css")

		_, err := s.StartEdit("0_2")
		require.NoError(t, err)
		_, err = s.ConfirmEdit(themepatch.RGB(100, 200, 255))
		require.NoError(t, err)
		require.Equal(t, "a rgb(100, 200, 255) #000000\n", s.Content())

		lit, ok := s.Lookup("0_21")
		require.True(t, ok)
		assert.False(t, s.IsModified(lit.ID))

		_, err = s.StartEdit(lit.ID)
		require.NoError(t, err)
		_, err = s.ConfirmEdit(themepatch.RGB(255, 255, 255))
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"0_2": "rgb(100, 200, 255)", "0_15": "#ffffff"}, s.Modified())
		rebuilt, err := themepatch.Rebuild(s.Original(), s.Modified())
		require.NoError(t, err)
		assert.Equal(t, s.Content(), rebuilt)
	})

	t.Run("rescans so only literals of the new text remain", func(t *testing.T) {
		t.Parallel()

		s := openSession(t, map[string]map[string]string{
			"dark": {"a.css": "a rgb(1, 2, 3) #000000\n"},
		}, "dark", "a.css")

		_, err := s.StartEdit("0_2")
		require.NoError(t, err)
		_, err = s.ConfirmEdit(themepatch.RGB(100, 200, 255))
		require.NoError(t, err)

		assert.Equal(t, []themepatch.Literal{
			{ID: "0_21", Value: themepatch.RGB(0, 0, 0), Line: 0, StartCol: 21, EndCol: 28, Text: "#000000"},
			{ID: "0_2", Value: themepatch.RGB(100, 200, 255), Line: 0, StartCol: 2, EndCol: 20, Text: "rgb(100, 200, 255)"},
		}, s.Literals())
		_, stale := s.Lookup("0_15")
		assert.False(t, stale)
		for _, lit := range s.Literals() {
			assert.NotEqual(t, "rgb(1, 2, 3)", lit.Text)
		}
	})

	t.Run("records the edit in the journal", func(t *testing.T) {
		t.Parallel()

		var got []themepatch.EditRecord
		journal := &mock.EditJournal{RecordFn: func(rec themepatch.EditRecord) error {
			got = append(got, rec)
			return nil
		}}
		at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		s := openSession(t, map[string]map[string]string{
			"dark": {"a.css": "#fff"},
		}, "dark", "a.css",
			themepatch.WithJournal(journal),
			themepatch.WithClock(func() time.Time { return at }))

		_, err := s.StartEdit("0_0")
		require.NoError(t, err)
		_, err = s.ConfirmEdit(themepatch.White)
		require.NoError(t, err)

		assert.Equal(t, []themepatch.EditRecord{{
			Theme: "dark", File: "a.css", ID: "0_0", Old: "#fff", New: "#151515", EditedAt: at,
		}}, got)
	})

	t.Run("fails without a pending edit", func(t *testing.T) {
		t.Parallel()

		s := openSession(t, map[string]map[string]string{"dark": {"a.css": "#fff"}}, "dark", "a.css")

		_, err := s.ConfirmEdit(themepatch.White)

		assert.ErrorIs(t, err, themepatch.ErrNoPendingEdit)
	})

	t.Run("rejects unknown literals", func(t *testing.T) {
		t.Parallel()

		s := openSession(t, map[string]map[string]string{"dark": {"a.css": "#fff"}}, "dark", "a.css")

		_, err := s.StartEdit("4_4")

		assert.ErrorIs(t, err, themepatch.ErrLiteralNotFound)
	})

	t.Run("cancel leaves the buffer untouched", func(t *testing.T) {
		t.Parallel()

		s := openSession(t, map[string]map[string]string{"dark": {"a.css": "#fff"}}, "dark", "a.css")

		_, err := s.StartEdit("0_0")
		require.NoError(t, err)
		s.CancelEdit()

		_, pending := s.Pending()
		assert.False(t, pending)
		assert.Equal(t, "#fff", s.Content())
		assert.False(t, s.Dirty())
	})
}

func TestSession_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes the buffer and clears edits", func(t *testing.T) {
		t.Parallel()

		themes := map[string]map[string]string{"dark": {"a.css": "c: #000000;\n"}}
		s := openSession(t, themes, "dark", "a.css")
		_, err := s.StartEdit("0_3")
		require.NoError(t, err)
		_, err = s.ConfirmEdit(themepatch.RGB(255, 0, 0))
		require.NoError(t, err)

		require.NoError(t, s.Save())

		assert.Equal(t, "c: #ff0000;\n", themes["dark"]["a.css"])
		assert.Empty(t, s.Modified())
		assert.False(t, s.Dirty())
		assert.Equal(t, s.Content(), s.Original())
	})

	t.Run("keeps edits when the write fails", func(t *testing.T) {
		t.Parallel()

		store := memStore(map[string]map[string]string{"dark": {"a.css": "#000000"}})
		store.WriteFn = func(theme, file, content string) error { return errors.New("read-only") }
		s := themepatch.NewSession(store, nil)
		_, err := s.OpenTheme("dark", themepatch.SortByName)
		require.NoError(t, err)
		require.NoError(t, s.OpenFile("a.css"))
		_, err = s.StartEdit("0_0")
		require.NoError(t, err)
		_, err = s.ConfirmEdit(themepatch.White)
		require.NoError(t, err)

		err = s.Save()

		require.Error(t, err)
		assert.True(t, s.Dirty())
		assert.Len(t, s.Modified(), 1)
	})
}

func TestSession_SaveAsNew(t *testing.T) {
	t.Parallel()

	t.Run("copies every cached file with edits applied", func(t *testing.T) {
		t.Parallel()

		themes := map[string]map[string]string{"dark": {
			"a.css":  "#000000",
			"b.toml": "bg = \"#111111\"",
		}}
		s := openSession(t, themes, "dark", "a.css")
		_, err := s.StartEdit("0_0")
		require.NoError(t, err)
		_, err = s.ConfirmEdit(themepatch.White)
		require.NoError(t, err)

		name, err := s.SaveAsNew("")

		require.NoError(t, err)
		assert.Equal(t, "new-dark", name)
		assert.Equal(t, map[string]string{
			"a.css":  "#ffffff",
			"b.toml": "bg = \"#111111\"",
		}, themes["new-dark"])
		assert.Equal(t, "#000000", themes["dark"]["a.css"])
		assert.False(t, s.Dirty())
		assert.Equal(t, "dark", s.Theme())
	})

	t.Run("refuses to replace an existing theme", func(t *testing.T) {
		t.Parallel()

		themes := map[string]map[string]string{"dark": {"a.css": "#000"}, "copy-dark": {}}
		s := openSession(t, themes, "dark", "")

		_, err := s.SaveAsNew("copy-")

		assert.ErrorIs(t, err, themepatch.ErrThemeExists)
	})
}

func TestSession_OverwriteTheme(t *testing.T) {
	t.Parallel()

	t.Run("persists edits made to earlier files", func(t *testing.T) {
		t.Parallel()

		themes := map[string]map[string]string{"dark": {
			"a.css": "#000000",
			"b.css": "#111111",
		}}
		s := openSession(t, themes, "dark", "a.css")
		_, err := s.StartEdit("0_0")
		require.NoError(t, err)
		_, err = s.ConfirmEdit(themepatch.White)
		require.NoError(t, err)
		require.NoError(t, s.OpenFile("b.css"))

		assert.Equal(t, []string{"a.css"}, s.DirtyFiles())
		require.NoError(t, s.OverwriteTheme())

		assert.Equal(t, "#ffffff", themes["dark"]["a.css"])
		assert.Equal(t, "#111111", themes["dark"]["b.css"])
		assert.False(t, s.Dirty())
	})
}

func TestSession_Reload(t *testing.T) {
	t.Parallel()

	t.Run("reapplies edits on top of the file on disk", func(t *testing.T) {
		t.Parallel()

		themes := map[string]map[string]string{"dark": {"a.css": "a #000000 #111111\n"}}
		s := openSession(t, themes, "dark", "a.css")
		_, err := s.StartEdit("0_2")
		require.NoError(t, err)
		_, err = s.ConfirmEdit(themepatch.White)
		require.NoError(t, err)
		themes["dark"]["a.css"] = "a #000000 #222222\n"

		require.NoError(t, s.Reload())

		assert.Equal(t, "a #ffffff #222222\n", s.Content())
		assert.Equal(t, "a #000000 #222222\n", s.Original())
		assert.True(t, s.Dirty())
	})

	t.Run("drops edits that no longer fit", func(t *testing.T) {
		t.Parallel()

		themes := map[string]map[string]string{"dark": {"a.css": "a #000000\n"}}
		s := openSession(t, themes, "dark", "a.css")
		_, err := s.StartEdit("0_2")
		require.NoError(t, err)
		_, err = s.ConfirmEdit(themepatch.White)
		require.NoError(t, err)
		themes["dark"]["a.css"] = "plain\n"

		err = s.Reload()

		require.Error(t, err)
		assert.Equal(t, "plain\n", s.Content())
		assert.Empty(t, s.Modified())
		assert.False(t, s.Dirty())
	})
}
