// Package content implements the block document model: an ordered, keyed
// sequence of blocks and a caret/selection over it.
package content

import "unicode/utf8"

// Common block types.
const (
	Unstyled          = "unstyled"
	HeaderOne         = "header-one"
	HeaderTwo         = "header-two"
	HeaderThree       = "header-three"
	HeaderFour        = "header-four"
	HeaderFive        = "header-five"
	HeaderSix         = "header-six"
	Blockquote        = "blockquote"
	CodeBlock         = "code-block"
	UnorderedListItem = "unordered-list-item"
	OrderedListItem   = "ordered-list-item"
)

// Block represents a structural unit of the document, such as a paragraph,
// heading or list item.
type Block struct {
	Key   string `yaml:"key" json:"key"`
	Type  string `yaml:"type" json:"type"`
	Text  string `yaml:"text" json:"text"`
	Depth int    `yaml:"depth,omitempty" json:"depth"`
}

// Length returns the number of runes in the block's text.
func (b Block) Length() int {
	return utf8.RuneCountInString(b.Text)
}

// IsEmpty reports whether the block has no text.
func (b Block) IsEmpty() bool {
	return b.Text == ""
}
