package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/themepatch"
)

// StyleFromPalette returns a function that maps chroma token types to
// themepatch styles using the palette's syntax colors. Categories are
// matched by chroma's token hierarchy, so subtypes such as StringDouble
// inherit the String color.
func StyleFromPalette(p themepatch.Palette) StyleFunc {
	return func(tt chromalib.TokenType) themepatch.Style {
		switch {
		case tt == chromalib.KeywordType:
			return themepatch.Style{Foreground: string(p.Type), Bold: true}
		case tt.InCategory(chromalib.Keyword):
			return themepatch.Style{Foreground: string(p.Keyword), Bold: true}
		case tt.InCategory(chromalib.Comment):
			return themepatch.Style{Foreground: string(p.Comment)}
		case tt.InSubCategory(chromalib.LiteralString):
			return themepatch.Style{Foreground: string(p.String)}
		case tt.InSubCategory(chromalib.LiteralNumber):
			return themepatch.Style{Foreground: string(p.Number)}
		case tt.InCategory(chromalib.Operator):
			return themepatch.Style{Foreground: string(p.Operator)}
		// Selectors, section headers and property keys in config files.
		case tt == chromalib.NameTag, tt == chromalib.NameAttribute, tt == chromalib.NameFunction:
			return themepatch.Style{Foreground: string(p.Function)}
		case tt == chromalib.NameConstant, tt == chromalib.NameVariable, tt == chromalib.NameBuiltin:
			return themepatch.Style{Foreground: string(p.Constant)}
		case tt == chromalib.Punctuation:
			return themepatch.Style{Foreground: string(p.Punctuation)}
		default:
			return themepatch.Style{}
		}
	}
}
