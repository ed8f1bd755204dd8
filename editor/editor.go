package editor

import (
	"io"

	"github.com/burntcarrot/blockbreak/content"
	"github.com/sirupsen/logrus"
)

// HandleResult reports whether a handler consumed an input.
type HandleResult string

const (
	Handled    HandleResult = "handled"
	NotHandled HandleResult = "not-handled"
)

// ReturnHandler is asked to handle a line-break before the default behaviour
// runs. A handler that returns Handled must have called set with the new
// state.
type ReturnHandler interface {
	HandleReturn(state EditorState, set func(EditorState)) HandleResult
}

// ReturnHandlerFunc adapts a function to ReturnHandler.
type ReturnHandlerFunc func(state EditorState, set func(EditorState)) HandleResult

func (f ReturnHandlerFunc) HandleReturn(state EditorState, set func(EditorState)) HandleResult {
	return f(state, set)
}

// EditorConfig configures an Editor.
type EditorConfig struct {
	// Handlers are asked in order on every line-break.
	Handlers []ReturnHandler

	// KeyFunc generates keys for new blocks. Defaults to content.RandomKey.
	KeyFunc content.KeyFunc

	// Logger receives debug logs for every committed change.
	Logger logrus.FieldLogger
}

// Editor owns the current state and applies inputs to it. It is meant to be
// driven from a single goroutine.
type Editor struct {
	state    EditorState
	handlers []ReturnHandler
	newKey   content.KeyFunc
	logger   logrus.FieldLogger
}

// NewEditor returns an editor over doc. An empty document gets a single
// unstyled block so the caret always has a home.
func NewEditor(doc content.Document, conf EditorConfig) (*Editor, error) {
	e := &Editor{
		handlers: conf.Handlers,
		newKey:   conf.KeyFunc,
		logger:   conf.Logger,
	}
	if e.newKey == nil {
		e.newKey = content.RandomKey
	}
	if e.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		e.logger = logger
	}

	if doc.Len() == 0 {
		key, err := content.FreshKey(doc, e.newKey)
		if err != nil {
			return nil, err
		}
		doc, err = content.NewDocument(content.Block{Key: key, Type: content.Unstyled})
		if err != nil {
			return nil, err
		}
	}

	e.state = NewState(doc)
	return e, nil
}

// State returns the current editor state.
func (e *Editor) State() EditorState {
	return e.state
}

// SetState replaces the current editor state.
func (e *Editor) SetState(s EditorState) {
	e.state = s
	e.logger.WithFields(logrus.Fields{
		"change": s.LastChangeType(),
		"blocks": s.Content().Len(),
		"caret":  s.Selection().FocusKey,
		"offset": s.Selection().FocusOffset,
	}).Debug("state committed")
}

// Return handles a line-break. Handlers are asked first; if none handles the
// input the current block is split.
func (e *Editor) Return() error {
	for _, h := range e.handlers {
		if h.HandleReturn(e.state, e.SetState) == Handled {
			return nil
		}
	}

	s, err := SplitBlock(e.state, e.newKey)
	if err != nil {
		e.logger.Errorf("split block: %v", err)
		return err
	}
	e.SetState(s)
	return nil
}

// Type inserts text at the caret.
func (e *Editor) Type(text string) error {
	if text == "" {
		return nil
	}
	return e.apply(InsertText(e.state, text))
}

// Backspace deletes backward from the caret.
func (e *Editor) Backspace() error {
	return e.apply(Backspace(e.state))
}

// SetBlockType changes the type of the selected blocks.
func (e *Editor) SetBlockType(blockType string) error {
	return e.apply(SetBlockType(e.state, blockType))
}

// Move moves the caret by delta positions.
func (e *Editor) Move(delta int) {
	e.state = MoveCaret(e.state, delta)
}

// MoveBlock moves the caret delta blocks up or down, keeping its offset where
// the target block is long enough.
func (e *Editor) MoveBlock(delta int) {
	doc := e.state.Content()
	i := doc.Index(e.state.Selection().EndKey())
	if i == -1 {
		return
	}

	target := clamp(i+delta, 0, doc.Len()-1)
	block := doc.Blocks()[target]
	offset := clamp(e.state.Selection().EndOffset(), 0, block.Length())
	e.state = e.state.WithSelection(content.Caret(block.Key, offset))
}

// MoveToBlockEdge moves the caret to the start or the end of the current
// block.
func (e *Editor) MoveToBlockEdge(end bool) {
	current, ok := e.state.CurrentBlock()
	if !ok {
		return
	}

	offset := 0
	if end {
		offset = current.Length()
	}
	e.state = e.state.WithSelection(content.Caret(current.Key, offset))
}

func (e *Editor) apply(s EditorState, err error) error {
	if err != nil {
		e.logger.Errorf("apply edit: %v", err)
		return err
	}
	e.SetState(s)
	return nil
}
