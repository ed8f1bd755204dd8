package content

// Selection represents a caret or a range over the document.
// The anchor is where the selection started, the focus is where it ends.
type Selection struct {
	AnchorKey    string `yaml:"anchorKey" json:"anchorKey"`
	AnchorOffset int    `yaml:"anchorOffset" json:"anchorOffset"`
	FocusKey     string `yaml:"focusKey" json:"focusKey"`
	FocusOffset  int    `yaml:"focusOffset" json:"focusOffset"`
	IsBackward   bool   `yaml:"isBackward" json:"isBackward"`
}

// Caret returns a collapsed, forward selection at offset in the block.
func Caret(key string, offset int) Selection {
	return Selection{
		AnchorKey:    key,
		AnchorOffset: offset,
		FocusKey:     key,
		FocusOffset:  offset,
	}
}

// IsCollapsed reports whether the selection is a caret.
func (s Selection) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

// StartKey returns the key of the block where the selection starts in
// document order.
func (s Selection) StartKey() string {
	if s.IsBackward {
		return s.FocusKey
	}
	return s.AnchorKey
}

// StartOffset returns the offset where the selection starts in document order.
func (s Selection) StartOffset() int {
	if s.IsBackward {
		return s.FocusOffset
	}
	return s.AnchorOffset
}

// EndKey returns the key of the block where the selection ends in document
// order.
func (s Selection) EndKey() string {
	if s.IsBackward {
		return s.AnchorKey
	}
	return s.FocusKey
}

// EndOffset returns the offset where the selection ends in document order.
func (s Selection) EndOffset() int {
	if s.IsBackward {
		return s.AnchorOffset
	}
	return s.FocusOffset
}

// Collapse returns a caret at the start of the selection.
func (s Selection) Collapse() Selection {
	return Caret(s.StartKey(), s.StartOffset())
}

// Valid reports whether both ends of the selection point into the document.
func (s Selection) Valid(doc Document) bool {
	anchor, ok := doc.Block(s.AnchorKey)
	if !ok {
		return false
	}
	focus, ok := doc.Block(s.FocusKey)
	if !ok {
		return false
	}

	return s.AnchorOffset >= 0 && s.AnchorOffset <= anchor.Length() &&
		s.FocusOffset >= 0 && s.FocusOffset <= focus.Length()
}
