package themepatch

// ColorPair represents a foreground and background color combination.
// Colors are hex strings in "#RRGGBB" format. Empty strings mean the
// terminal default.
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for the visual elements of the editor.
type Styles struct {
	Text         ColorPair // Plain file content
	LineNumber   ColorPair // Gutter line numbers
	FileEntry    ColorPair // Unselected entries in the file list
	Selected     ColorPair // Selected file list entry
	Disabled     ColorPair // Files whose extension is not enabled
	Header       ColorPair // Panel titles
	StatusBar    ColorPair // Bottom status line
	Error        ColorPair // Error slot in the status line
	Border       ColorPair // Panel borders, focused panel uses Selected
	ModifiedMark ColorPair // Marker shown before edited literals
}

// Theme provides styles for rendering the editor.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
}

// Color is a hex color string in "#RRGGBB" format.
type Color string

// Palette holds the semantic colors a theme is built from. Syntax colors
// tint the parts of a file that are not colour literals.
type Palette struct {
	Background Color
	Foreground Color

	Keyword     Color
	String      Color
	Number      Color
	Comment     Color
	Operator    Color
	Function    Color
	Type        Color
	Constant    Color
	Punctuation Color

	UIBackground Color
	UIForeground Color
	UIAccent     Color
	UIError      Color
}
