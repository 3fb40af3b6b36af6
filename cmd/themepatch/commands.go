package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/themepatch"
	"github.com/fwojciec/themepatch/toml"
	"github.com/spf13/cobra"
)

// ErrUnknownSort is returned for an unrecognised --sort value.
var ErrUnknownSort = errors.New("unknown sort mode")

// ErrInvalidColor is returned when the colour argument of set is not a
// single colour literal.
var ErrInvalidColor = errors.New("not a color literal")

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	var flags Flags

	root := &cobra.Command{
		Use:   "themepatch [theme]",
		Short: "Edit the colours of omarchy-style theme folders",
		Long: `themepatch finds the hex, rgb() and rgba() colour literals in theme
configuration files and rewrites them in place, keeping each literal in the
format it was written in.

Run without a subcommand to start the interactive editor.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			if err := app.Setup(flags); err != nil {
				return err
			}
			app.Stdout = cmd.OutOrStdout()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var theme string
			if len(args) > 0 {
				theme = args[0]
			}
			return app.RunEditor(cmd.Context(), theme)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/themepatch/config.toml)")
	pf.StringVar(&flags.ThemesPath, "themes-path", "", "themes folder, overrides the config file")
	pf.StringVar(&flags.StateDir, "state-dir", "", "folder for the edit journal and debug log")
	pf.BoolVar(&flags.Debug, "debug", false, "write a debug log to the state folder")
	pf.StringVar(&flags.UITheme, "ui-theme", "auto", "editor colours: dark, light or auto")
	pf.StringVar(&flags.Sort, "sort", "name", "list order: name, extension or last")
	pf.StringVarP(&flags.Output, "output", "o", "text", "output format: text, json or yaml")

	root.AddCommand(
		newThemesCmd(app, &flags),
		newFilesCmd(app, &flags),
		newScanCmd(app, &flags),
		newSetCmd(app),
		newConfigCmd(app, &flags),
		newHistoryCmd(app, &flags),
		newVersionCmd(),
	)
	return root
}

func parseSort(s string) (themepatch.SortMode, error) {
	mode, ok := themepatch.ParseSortMode(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
	return mode, nil
}

// ThemeList is the output of the themes command.
type ThemeList struct {
	Path   string   `json:"path" yaml:"path"`
	Themes []string `json:"themes" yaml:"themes"`
}

func newThemesCmd(app *App, flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the theme folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseSort(flags.Sort)
			if err != nil {
				return err
			}
			themes, err := app.NewSession().Themes(mode)
			if err != nil {
				return err
			}
			result := ThemeList{Path: app.Config.General.ThemesPath, Themes: themes}
			return outputResults(app.Stdout, flags.Output, result, func(tf *tableFormatter) {
				for _, t := range themes {
					tf.Row(t)
				}
			})
		},
	}
}

// FileEntry describes one file of a theme.
type FileEntry struct {
	Name      string `json:"name" yaml:"name"`
	Extension string `json:"extension" yaml:"extension"`
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Color     string `json:"color" yaml:"color"`
}

func newFilesCmd(app *App, flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "files <theme>",
		Short: "List the editable files of a theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseSort(flags.Sort)
			if err != nil {
				return err
			}
			files, err := app.NewSession().OpenTheme(args[0], mode)
			if err != nil {
				return err
			}
			entries := make([]FileEntry, 0, len(files))
			for _, f := range files {
				entries = append(entries, FileEntry{
					Name:      f,
					Extension: themepatch.ExtensionKey(f),
					Enabled:   app.Config.ExtensionEnabled(f),
					Color:     app.Config.ExtensionColor(f).Hex(),
				})
			}
			return outputResults(app.Stdout, flags.Output, entries, func(tf *tableFormatter) {
				tf.Header("FILE", "PARSED")
				for _, e := range entries {
					parsed := "yes"
					if !e.Enabled {
						parsed = "no"
					}
					tf.Row(e.Name, parsed)
				}
			})
		},
	}
}

// LiteralEntry describes one colour literal found by scan.
type LiteralEntry struct {
	ID     string `json:"id" yaml:"id"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Text   string `json:"text" yaml:"text"`
	Format string `json:"format" yaml:"format"`
	Hex    string `json:"hex" yaml:"hex"`
	Alpha  uint8  `json:"alpha" yaml:"alpha"`
}

// ScanResult is the output of the scan command.
type ScanResult struct {
	Theme    string         `json:"theme" yaml:"theme"`
	File     string         `json:"file" yaml:"file"`
	Literals []LiteralEntry `json:"literals" yaml:"literals"`
}

func newScanCmd(app *App, flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <theme> <file>",
		Short: "List the colour literals of a file",
		Long: `List every colour literal of a theme file with its identifier,
position and format. Lines and columns are zero-based byte offsets, the
identifier is what set expects.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openFile(app, args[0], args[1])
			if err != nil {
				return err
			}
			result := ScanResult{Theme: args[0], File: args[1], Literals: []LiteralEntry{}}
			for _, lit := range session.Literals() {
				result.Literals = append(result.Literals, LiteralEntry{
					ID:     lit.ID,
					Line:   lit.Line,
					Column: lit.StartCol,
					Text:   lit.Text,
					Format: themepatch.DetectFormat(lit.Text).String(),
					Hex:    lit.Value.Hex(),
					Alpha:  lit.Value.A,
				})
			}
			return outputResults(app.Stdout, flags.Output, result, func(tf *tableFormatter) {
				tf.Header("ID", "TEXT", "FORMAT", "HEX")
				for _, l := range result.Literals {
					tf.Row(l.ID, l.Text, l.Format, l.Hex)
				}
			})
		},
	}
}

func newSetCmd(app *App) *cobra.Command {
	var (
		dryRun   bool
		showDiff bool
	)
	cmd := &cobra.Command{
		Use:   "set <theme> <file> <id> <color>",
		Short: "Replace one colour literal",
		Long: `Replace the literal with the given identifier (see scan) by a new
colour. The colour may be written as any hex, rgb() or rgba() literal; it is
converted to the format of the literal it replaces.`,
		Example: `  themepatch set tokyo-night waybar.css 3_12 '#7aa2f7'
  themepatch set tokyo-night hyprland.conf 0_20 'rgb(10, 20, 30)' --dry-run --diff`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, file, id, value := args[0], args[1], args[2], args[3]
			c, ok := themepatch.ParseColor(value)
			if !ok {
				return fmt.Errorf("%q: %w", value, ErrInvalidColor)
			}
			var opts []themepatch.SessionOption
			if dryRun {
				opts = append(opts, themepatch.WithJournal(nil))
			}
			session, err := openFile(app, theme, file, opts...)
			if err != nil {
				return err
			}
			edit, err := session.StartEdit(id)
			if err != nil {
				return err
			}
			text, err := session.ConfirmEdit(c)
			if err != nil {
				return err
			}
			if showDiff {
				fmt.Fprint(app.Stdout, app.Differ.Diff(file, session.Original(), session.Content()))
			}
			if dryRun {
				fmt.Fprintf(app.Stdout, "%s: %s -> %s (dry run)\n", file, edit.Text, text)
				return nil
			}
			if err := session.Save(); err != nil {
				return err
			}
			fmt.Fprintf(app.Stdout, "%s: %s -> %s\n", file, edit.Text, text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not write the file")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff of the change")
	return cmd
}

func openFile(app *App, theme, file string, opts ...themepatch.SessionOption) (*themepatch.Session, error) {
	session := app.NewSession(opts...)
	if _, err := session.OpenTheme(theme, themepatch.SortByName); err != nil {
		return nil, err
	}
	if err := session.OpenFile(file); err != nil {
		return nil, err
	}
	return session, nil
}

func newConfigCmd(app *App, flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the configuration in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.Output != string(formatText) {
				return outputResults(app.Stdout, flags.Output, app.Config, nil)
			}
			if app.ConfigPath == "" {
				fmt.Fprintln(app.Stdout, "# defaults, no config file found")
			} else {
				fmt.Fprintf(app.Stdout, "# %s\n", app.ConfigPath)
			}
			return toml.Encode(app.Stdout, app.Config)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write the configuration in effect to the config file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return saveConfig(app, "wrote config")
			},
		},
		newExtensionCmd(app, "enable", true),
		newExtensionCmd(app, "disable", false),
	)
	return cmd
}

func newExtensionCmd(app *App, verb string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <extension>...",
		Short: strings.ToUpper(verb[:1]) + verb[1:] + " colour parsing for file extensions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, ext := range args {
				app.Config.SetExtension(ext, enabled)
			}
			return saveConfig(app, verb+"d "+strings.Join(args, " "))
		},
	}
}

func saveConfig(app *App, msg string) error {
	if err := app.ConfigStore.Save(app.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintln(app.Stdout, msg)
	return nil
}

func newHistoryCmd(app *App, flags *Flags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently confirmed colour edits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Journal.Load()
			if err != nil {
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[len(records)-limit:]
			}
			if records == nil {
				records = []themepatch.EditRecord{}
			}
			return outputResults(app.Stdout, flags.Output, records, func(tf *tableFormatter) {
				tf.Header("TIME", "THEME", "FILE", "OLD", "NEW")
				for _, r := range records {
					tf.Row(r.EditedAt.Local().Format("2006-01-02 15:04:05"), r.Theme, r.File, r.Old, r.New)
				}
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of edits to show, 0 for all")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "themepatch %s\n", version)
		},
	}
}
