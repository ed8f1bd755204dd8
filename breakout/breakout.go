// Package breakout changes how a block editor answers a line-break: at the
// edge of a heading, quote, list item or code block the caret "breaks out"
// into a fresh paragraph instead of continuing the current block type.
//
// Single-breakout types (headings by default) break out from either edge of
// the block. Double-breakout types (quotes, list items, code blocks) only
// break out from an empty block, which is replaced by the new paragraph; the
// first return in such a block continues it, the second one leaves it.
package breakout

import (
	"io"

	"github.com/burntcarrot/blockbreak/content"
	"github.com/burntcarrot/blockbreak/editor"
	"github.com/sirupsen/logrus"
)

// Transform decides whether a line-break should break out of the current
// block and builds the resulting document. It holds only immutable
// configuration and is safe for concurrent use as long as its KeyFunc is.
type Transform struct {
	conf   config
	newKey content.KeyFunc
	logger logrus.FieldLogger
}

// Result is the outcome of Apply. When Handled is false, Content and
// Selection are the inputs, unchanged.
type Result struct {
	Handled         bool
	Content         content.Document
	Selection       content.Selection
	SelectionBefore content.Selection
}

// New returns a Transform configured by opts.
func New(opts Options) *Transform {
	t := &Transform{
		conf:   opts.resolve(),
		newKey: opts.KeyFunc,
		logger: opts.Logger,
	}
	if t.newKey == nil {
		t.newKey = content.RandomKey
	}
	if t.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		t.logger = logger
	}
	return t
}

// DefaultBlockType returns the type given to broken-out blocks.
func (t *Transform) DefaultBlockType() string {
	return t.conf.defaultType
}

// IsSingleBreakout reports whether blockType breaks out from either edge.
func (t *Transform) IsSingleBreakout(blockType string) bool {
	return t.conf.single[blockType]
}

// IsDoubleBreakout reports whether blockType breaks out only when empty.
func (t *Transform) IsDoubleBreakout(blockType string) bool {
	return t.conf.double[blockType]
}

// Apply breaks out of the block under a collapsed caret when the caret sits
// at a qualifying edge. The inputs are never modified.
func (t *Transform) Apply(doc content.Document, sel content.Selection) Result {
	notHandled := Result{Content: doc, Selection: sel, SelectionBefore: sel}

	if !sel.IsCollapsed() || !sel.Valid(doc) {
		return notHandled
	}

	current, ok := doc.Block(sel.EndKey())
	if !ok {
		return notHandled
	}

	single := t.IsSingleBreakout(current.Type)
	double := t.IsDoubleBreakout(current.Type)
	if !single && !double {
		return notHandled
	}

	length := current.Length()
	endOffset := sel.EndOffset()
	atEnd := endOffset == length
	atStart := endOffset == 0

	if !(atEnd && single) && !(atStart && single) && !(atStart && length == 0) {
		return notHandled
	}

	key, err := content.FreshKey(doc, t.newKey)
	if err != nil {
		t.logger.Warnf("breakout skipped for block %s: %v", current.Key, err)
		return notHandled
	}

	empty := content.Block{
		Key:   key,
		Type:  t.conf.defaultType,
		Text:  "",
		Depth: 0,
	}

	// The end-of-block rows come first, so an empty block always hands the
	// caret to the new block. Only an empty block is ever discarded, even
	// when its type is configured as both single and double breakout.
	var replacement []content.Block
	var focusKey string
	switch {
	case atEnd && double && current.IsEmpty():
		replacement = []content.Block{empty}
		focusKey = empty.Key
	case atEnd:
		replacement = []content.Block{current, empty}
		focusKey = empty.Key
	default:
		replacement = []content.Block{empty, current}
		focusKey = current.Key
	}

	newDoc, err := doc.Replace(current.Key, replacement...)
	if err != nil {
		t.logger.Warnf("breakout skipped for block %s: %v", current.Key, err)
		return notHandled
	}

	t.logger.WithFields(logrus.Fields{
		"block":    current.Key,
		"type":     current.Type,
		"atEnd":    atEnd,
		"newBlock": key,
	}).Debug("broke out of block")

	return Result{
		Handled:         true,
		Content:         newDoc,
		Selection:       content.Caret(focusKey, 0),
		SelectionBefore: sel,
	}
}

// HandleReturn is the editor hook: it applies the transform to state and, if
// it fires, commits the result through set as a single split-block change.
func (t *Transform) HandleReturn(state editor.EditorState, set func(editor.EditorState)) editor.HandleResult {
	res := t.Apply(state.Content(), state.Selection())
	if !res.Handled {
		return editor.NotHandled
	}

	set(editor.Push(state, res.Content, res.Selection, editor.ChangeSplitBlock))
	return editor.Handled
}

// HandleReturnFrom is HandleReturn for hosts that expose their state through
// an accessor.
func (t *Transform) HandleReturnFrom(get func() editor.EditorState, set func(editor.EditorState)) editor.HandleResult {
	return t.HandleReturn(get(), set)
}
