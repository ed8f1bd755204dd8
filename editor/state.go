// Package editor holds the host side of the block editor: an immutable
// editor state, the commit step that tags each edit with a change type, and
// the default behaviours applied when no handler claims an input.
package editor

import "github.com/burntcarrot/blockbreak/content"

// ChangeType tags a committed edit. Hosts group undo steps by change.
type ChangeType string

const (
	ChangeSplitBlock         ChangeType = "split-block"
	ChangeInsertCharacters   ChangeType = "insert-characters"
	ChangeBackspaceCharacter ChangeType = "backspace-character"
	ChangeBlockType          ChangeType = "change-block-type"
	ChangeRemoveRange        ChangeType = "remove-range"
)

// EditorState is a snapshot of the document, the selection and the last
// change that produced them.
type EditorState struct {
	content         content.Document
	selection       content.Selection
	selectionBefore content.Selection
	lastChange      ChangeType
}

// NewState returns a state with the caret at the start of the first block.
func NewState(doc content.Document) EditorState {
	var sel content.Selection
	if first, ok := doc.First(); ok {
		sel = content.Caret(first.Key, 0)
	}

	return EditorState{
		content:         doc,
		selection:       sel,
		selectionBefore: sel,
	}
}

func (s EditorState) Content() content.Document { return s.content }

func (s EditorState) Selection() content.Selection { return s.selection }

// SelectionBefore returns the selection in place before the last change.
func (s EditorState) SelectionBefore() content.Selection { return s.selectionBefore }

func (s EditorState) LastChangeType() ChangeType { return s.lastChange }

// CurrentBlock returns the block holding the end of the selection.
func (s EditorState) CurrentBlock() (content.Block, bool) {
	return s.content.Block(s.selection.EndKey())
}

// WithSelection returns a copy of the state with a new selection. The change
// type is left as is: moving the caret is not an edit.
func (s EditorState) WithSelection(sel content.Selection) EditorState {
	s.selection = sel
	return s
}

// Push commits doc and sel as a single logical edit of the given type.
func Push(s EditorState, doc content.Document, sel content.Selection, change ChangeType) EditorState {
	return EditorState{
		content:         doc,
		selection:       sel,
		selectionBefore: s.selection,
		lastChange:      change,
	}
}
