package editor

import (
	"errors"

	"github.com/burntcarrot/blockbreak/content"
)

var ErrNoCurrentBlock = errors.New("selection does not point at a block")

// SplitBlock is the default line-break behaviour: the current block is split
// at the caret and the new block keeps its type and depth. A range selection
// is removed first.
func SplitBlock(s EditorState, newKey content.KeyFunc) (EditorState, error) {
	doc, sel, err := removeRange(s.content, s.selection)
	if err != nil {
		return s, err
	}

	current, ok := doc.Block(sel.EndKey())
	if !ok {
		return s, ErrNoCurrentBlock
	}

	key, err := content.FreshKey(doc, newKey)
	if err != nil {
		return s, err
	}

	text := []rune(current.Text)
	offset := clamp(sel.EndOffset(), 0, len(text))

	head := current
	head.Text = string(text[:offset])
	tail := content.Block{
		Key:   key,
		Type:  current.Type,
		Text:  string(text[offset:]),
		Depth: current.Depth,
	}

	newDoc, err := doc.Replace(current.Key, head, tail)
	if err != nil {
		return s, err
	}

	return Push(s, newDoc, content.Caret(key, 0), ChangeSplitBlock), nil
}

// InsertText inserts text at the caret, or replaces the active selection.
func InsertText(s EditorState, text string) (EditorState, error) {
	if text == "" {
		return s, nil
	}

	doc, sel, err := removeRange(s.content, s.selection)
	if err != nil {
		return s, err
	}

	current, ok := doc.Block(sel.EndKey())
	if !ok {
		return s, ErrNoCurrentBlock
	}

	runes := []rune(current.Text)
	offset := clamp(sel.EndOffset(), 0, len(runes))
	ins := []rune(text)

	out := make([]rune, 0, len(runes)+len(ins))
	out = append(out, runes[:offset]...)
	out = append(out, ins...)
	out = append(out, runes[offset:]...)
	current.Text = string(out)

	newDoc, err := doc.Update(current)
	if err != nil {
		return s, err
	}

	return Push(s, newDoc, content.Caret(current.Key, offset+len(ins)), ChangeInsertCharacters), nil
}

// Backspace applies backspace semantics. At the start of a styled block the
// block style is removed first; at the start of an unstyled block the block
// is joined with the previous one.
func Backspace(s EditorState) (EditorState, error) {
	if !s.selection.IsCollapsed() {
		doc, sel, err := removeRange(s.content, s.selection)
		if err != nil {
			return s, err
		}
		return Push(s, doc, sel, ChangeRemoveRange), nil
	}

	current, ok := s.CurrentBlock()
	if !ok {
		return s, ErrNoCurrentBlock
	}

	offset := clamp(s.selection.EndOffset(), 0, current.Length())

	if offset > 0 {
		runes := []rune(current.Text)
		current.Text = string(append(runes[:offset-1:offset-1], runes[offset:]...))

		doc, err := s.content.Update(current)
		if err != nil {
			return s, err
		}
		return Push(s, doc, content.Caret(current.Key, offset-1), ChangeBackspaceCharacter), nil
	}

	if current.Type != content.Unstyled {
		current.Type = content.Unstyled
		current.Depth = 0

		doc, err := s.content.Update(current)
		if err != nil {
			return s, err
		}
		return Push(s, doc, s.selection, ChangeBlockType), nil
	}

	i := s.content.Index(current.Key)
	if i <= 0 {
		return s, nil
	}

	prev := s.content.Blocks()[i-1]
	caret := content.Caret(prev.Key, prev.Length())
	prev.Text += current.Text

	doc, err := s.content.Replace(current.Key)
	if err != nil {
		return s, err
	}
	doc, err = doc.Update(prev)
	if err != nil {
		return s, err
	}

	return Push(s, doc, caret, ChangeBackspaceCharacter), nil
}

// SetBlockType changes the type of every block touched by the selection.
func SetBlockType(s EditorState, blockType string) (EditorState, error) {
	start := s.content.Index(s.selection.StartKey())
	end := s.content.Index(s.selection.EndKey())
	if start == -1 || end == -1 {
		return s, ErrNoCurrentBlock
	}

	blocks := s.content.Blocks()
	for i := start; i <= end; i++ {
		blocks[i].Type = blockType
	}

	doc, err := content.NewDocument(blocks...)
	if err != nil {
		return s, err
	}

	return Push(s, doc, s.selection, ChangeBlockType), nil
}

// MoveCaret moves a collapsed caret by delta positions. Crossing a block
// boundary costs one position, like stepping over a line break.
func MoveCaret(s EditorState, delta int) EditorState {
	blocks := s.content.Blocks()
	i := s.content.Index(s.selection.EndKey())
	if i == -1 {
		return s
	}

	offset := clamp(s.selection.EndOffset(), 0, blocks[i].Length())

	for ; delta > 0; delta-- {
		if offset < blocks[i].Length() {
			offset++
		} else if i < len(blocks)-1 {
			i++
			offset = 0
		}
	}

	for ; delta < 0; delta++ {
		if offset > 0 {
			offset--
		} else if i > 0 {
			i--
			offset = blocks[i].Length()
		}
	}

	return s.WithSelection(content.Caret(blocks[i].Key, offset))
}

// removeRange deletes the selected text. The start block survives and keeps
// its type; the returned selection is a caret at the start of the range.
func removeRange(doc content.Document, sel content.Selection) (content.Document, content.Selection, error) {
	if sel.IsCollapsed() {
		return doc, sel, nil
	}

	start := doc.Index(sel.StartKey())
	end := doc.Index(sel.EndKey())
	if start == -1 || end == -1 {
		return doc, sel, ErrNoCurrentBlock
	}

	blocks := doc.Blocks()
	startRunes := []rune(blocks[start].Text)
	endRunes := []rune(blocks[end].Text)
	startOffset := clamp(sel.StartOffset(), 0, len(startRunes))
	endOffset := clamp(sel.EndOffset(), 0, len(endRunes))

	merged := blocks[start]
	merged.Text = string(startRunes[:startOffset]) + string(endRunes[endOffset:])

	out := make([]content.Block, 0, len(blocks)-(end-start))
	out = append(out, blocks[:start]...)
	out = append(out, merged)
	out = append(out, blocks[end+1:]...)

	newDoc, err := content.NewDocument(out...)
	if err != nil {
		return doc, sel, err
	}

	return newDoc, content.Caret(merged.Key, startOffset), nil
}

func clamp(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
