package breakout

import (
	"testing"

	"github.com/burntcarrot/blockbreak/content"
	"github.com/burntcarrot/blockbreak/editor"
	"github.com/google/go-cmp/cmp"
)

// testDocument has one block of each interesting kind between two paragraphs.
func testDocument() content.Document {
	return content.MustDocument(
		content.Block{Key: "p1", Type: content.Unstyled, Text: "intro"},
		content.Block{Key: "h1", Type: content.HeaderOne, Text: "Title"},
		content.Block{Key: "h2", Type: content.HeaderTwo, Text: ""},
		content.Block{Key: "q1", Type: content.Blockquote, Text: "quote"},
		content.Block{Key: "q2", Type: content.Blockquote, Text: ""},
		content.Block{Key: "li", Type: content.UnorderedListItem, Text: "", Depth: 2},
		content.Block{Key: "p2", Type: content.Unstyled, Text: "outro"},
	)
}

func newTestTransform() *Transform {
	return New(Options{KeyFunc: content.SequentialKeys("new")})
}

func TestApply(t *testing.T) {
	empty := content.Block{Key: "new1", Type: content.Unstyled}

	tests := []struct {
		description       string
		sel               content.Selection
		expectedHandled   bool
		expectedKeys      []string
		expectedSelection content.Selection
	}{
		{description: "range selection",
			sel:             content.Selection{AnchorKey: "h1", AnchorOffset: 0, FocusKey: "h1", FocusOffset: 5},
			expectedHandled: false},

		{description: "backward range selection across blocks",
			sel:             content.Selection{AnchorKey: "q1", AnchorOffset: 5, FocusKey: "h1", FocusOffset: 5, IsBackward: true},
			expectedHandled: false},

		{description: "unstyled block",
			sel:             content.Caret("p1", 5),
			expectedHandled: false},

		{description: "middle of heading",
			sel:             content.Caret("h1", 2),
			expectedHandled: false},

		{description: "end of heading",
			sel:               content.Caret("h1", 5),
			expectedHandled:   true,
			expectedKeys:      []string{"p1", "h1", "new1", "h2", "q1", "q2", "li", "p2"},
			expectedSelection: content.Caret("new1", 0)},

		{description: "start of heading",
			sel:               content.Caret("h1", 0),
			expectedHandled:   true,
			expectedKeys:      []string{"p1", "new1", "h1", "h2", "q1", "q2", "li", "p2"},
			expectedSelection: content.Caret("h1", 0)},

		{description: "empty heading",
			sel:               content.Caret("h2", 0),
			expectedHandled:   true,
			expectedKeys:      []string{"p1", "h1", "h2", "new1", "q1", "q2", "li", "p2"},
			expectedSelection: content.Caret("new1", 0)},

		{description: "end of non-empty blockquote",
			sel:             content.Caret("q1", 5),
			expectedHandled: false},

		{description: "start of non-empty blockquote",
			sel:             content.Caret("q1", 0),
			expectedHandled: false},

		{description: "empty blockquote",
			sel:               content.Caret("q2", 0),
			expectedHandled:   true,
			expectedKeys:      []string{"p1", "h1", "h2", "q1", "new1", "li", "p2"},
			expectedSelection: content.Caret("new1", 0)},

		{description: "empty nested list item",
			sel:               content.Caret("li", 0),
			expectedHandled:   true,
			expectedKeys:      []string{"p1", "h1", "h2", "q1", "q2", "new1", "p2"},
			expectedSelection: content.Caret("new1", 0)},
	}

	for _, tc := range tests {
		doc := testDocument()
		res := newTestTransform().Apply(doc, tc.sel)

		if res.Handled != tc.expectedHandled {
			t.Errorf("(%s) got handled = %v, expected = %v\n", tc.description, res.Handled, tc.expectedHandled)
			continue
		}

		if !res.Handled {
			if !res.Content.Equal(doc) {
				t.Errorf("(%s) document changed although not handled, diff: %v\n", tc.description, cmp.Diff(res.Content.Blocks(), doc.Blocks()))
			}
			if !cmp.Equal(res.Selection, tc.sel) {
				t.Errorf("(%s) selection changed although not handled, diff: %v\n", tc.description, cmp.Diff(res.Selection, tc.sel))
			}
			continue
		}

		if !cmp.Equal(res.Content.Keys(), tc.expectedKeys) {
			t.Errorf("(%s) wrong block order, diff: %v\n", tc.description, cmp.Diff(res.Content.Keys(), tc.expectedKeys))
		}

		if !cmp.Equal(res.Selection, tc.expectedSelection) {
			t.Errorf("(%s) wrong selection, diff: %v\n", tc.description, cmp.Diff(res.Selection, tc.expectedSelection))
		}

		if !cmp.Equal(res.SelectionBefore, tc.sel) {
			t.Errorf("(%s) wrong selection before, diff: %v\n", tc.description, cmp.Diff(res.SelectionBefore, tc.sel))
		}

		got, _ := res.Content.Block("new1")
		if !cmp.Equal(got, empty) {
			t.Errorf("(%s) wrong new block, diff: %v\n", tc.description, cmp.Diff(got, empty))
		}

		// The input document is never modified.
		if !doc.Equal(testDocument()) {
			t.Errorf("(%s) input document was modified\n", tc.description)
		}
	}
}

func TestApplyKeepsUnaffectedBlocks(t *testing.T) {
	doc := testDocument()
	res := newTestTransform().Apply(doc, content.Caret("h1", 5))
	if !res.Handled {
		t.Fatalf("expected breakout to be handled")
	}

	seen := make(map[string]bool)
	for _, block := range res.Content.Blocks() {
		if seen[block.Key] {
			t.Errorf("duplicate key in result: %s\n", block.Key)
		}
		seen[block.Key] = true
	}

	for _, block := range doc.Blocks() {
		got, ok := res.Content.Block(block.Key)
		if !ok {
			t.Errorf("block %s dropped\n", block.Key)
			continue
		}
		if !cmp.Equal(got, block) {
			t.Errorf("block %s changed, diff: %v\n", block.Key, cmp.Diff(got, block))
		}
	}
}

func TestApplyDiscardsEmptyDoubleBreakoutBlock(t *testing.T) {
	doc := testDocument()
	res := newTestTransform().Apply(doc, content.Caret("q2", 0))
	if !res.Handled {
		t.Fatalf("expected breakout to be handled")
	}

	if res.Content.Len() != doc.Len() {
		t.Errorf("got len = %d, expected = %d\n", res.Content.Len(), doc.Len())
	}

	if res.Content.Contains("q2") {
		t.Errorf("empty blockquote should have been discarded")
	}

	if got := res.Content.Index("new1"); got != doc.Index("q2") {
		t.Errorf("got index = %d, expected = %d\n", got, doc.Index("q2"))
	}
}

func TestApplyIsIdempotentWhenNotHandled(t *testing.T) {
	tr := newTestTransform()
	doc := testDocument()
	sel := content.Caret("q1", 5)

	first := tr.Apply(doc, sel)
	second := tr.Apply(doc, sel)

	if first.Handled || second.Handled {
		t.Fatalf("expected both calls to be not handled")
	}

	if !first.Content.Equal(second.Content) || !cmp.Equal(first.Selection, second.Selection) {
		t.Errorf("results differ between calls")
	}
}

func TestApplyKeyCollision(t *testing.T) {
	doc := testDocument()

	keys := []string{"p1", "h1", "fresh"}
	i := 0
	tr := New(Options{KeyFunc: func() string {
		key := keys[i%len(keys)]
		i++
		return key
	}})

	res := tr.Apply(doc, content.Caret("h1", 5))
	if !res.Handled {
		t.Fatalf("expected breakout to be handled")
	}

	if !cmp.Equal(res.Selection, content.Caret("fresh", 0)) {
		t.Errorf("got != expected, diff: %v\n", cmp.Diff(res.Selection, content.Caret("fresh", 0)))
	}
}

func TestApplyKeyExhausted(t *testing.T) {
	doc := testDocument()
	tr := New(Options{KeyFunc: func() string { return "h1" }})

	sel := content.Caret("h1", 5)
	res := tr.Apply(doc, sel)

	if res.Handled {
		t.Fatalf("expected breakout to be skipped when no key is available")
	}
	if !res.Content.Equal(doc) {
		t.Errorf("document changed although not handled")
	}
}

func TestApplyCustomTypes(t *testing.T) {
	doc := content.MustDocument(
		content.Block{Key: "a", Type: "callout", Text: "note"},
		content.Block{Key: "b", Type: content.HeaderOne, Text: "Title"},
		content.Block{Key: "c", Type: "aside", Text: ""},
	)

	tr := New(Options{
		DefaultBlockType:    "paragraph",
		SingleBreakoutTypes: []string{"callout"},
		DoubleBreakoutTypes: []string{"aside"},
		KeyFunc:             content.SequentialKeys("new"),
	})

	res := tr.Apply(doc, content.Caret("a", 4))
	if !res.Handled {
		t.Fatalf("expected breakout from callout")
	}
	if block, _ := res.Content.Block("new1"); block.Type != "paragraph" {
		t.Errorf("got type = %s, expected = paragraph\n", block.Type)
	}

	// Headings are no longer configured.
	if res := tr.Apply(doc, content.Caret("b", 5)); res.Handled {
		t.Errorf("heading should not break out with custom types")
	}

	res = tr.Apply(doc, content.Caret("c", 0))
	if !res.Handled || res.Content.Contains("c") {
		t.Errorf("empty aside should be replaced")
	}
}

func TestHandleReturn(t *testing.T) {
	tr := newTestTransform()
	state := editor.NewState(testDocument()).WithSelection(content.Caret("h1", 5))

	var committed editor.EditorState
	calls := 0
	set := func(s editor.EditorState) {
		committed = s
		calls++
	}

	if got := tr.HandleReturn(state, set); got != editor.Handled {
		t.Fatalf("got = %v, expected = %v\n", got, editor.Handled)
	}

	if calls != 1 {
		t.Fatalf("set called %d times, expected once\n", calls)
	}

	if committed.LastChangeType() != editor.ChangeSplitBlock {
		t.Errorf("got change = %v, expected = %v\n", committed.LastChangeType(), editor.ChangeSplitBlock)
	}

	if !cmp.Equal(committed.Selection(), content.Caret("new1", 0)) {
		t.Errorf("got != expected, diff: %v\n", cmp.Diff(committed.Selection(), content.Caret("new1", 0)))
	}

	if !cmp.Equal(committed.SelectionBefore(), content.Caret("h1", 5)) {
		t.Errorf("got != expected, diff: %v\n", cmp.Diff(committed.SelectionBefore(), content.Caret("h1", 5)))
	}

	// Not handled: set must not be called.
	state = state.WithSelection(content.Caret("p1", 2))
	if got := tr.HandleReturnFrom(func() editor.EditorState { return state }, set); got != editor.NotHandled {
		t.Errorf("got = %v, expected = %v\n", got, editor.NotHandled)
	}
	if calls != 1 {
		t.Errorf("set called %d times, expected once\n", calls)
	}
}

func TestEditorIntegration(t *testing.T) {
	doc := content.MustDocument(content.Block{Key: "q", Type: content.Blockquote, Text: "wise words"})

	e, err := editor.NewEditor(doc, editor.EditorConfig{
		Handlers: []editor.ReturnHandler{newTestTransform()},
		KeyFunc:  content.SequentialKeys("host"),
	})
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	e.MoveToBlockEdge(true)

	// The first return continues the quote, the second one leaves it.
	if err := e.Return(); err != nil {
		t.Fatalf("error: %v\n", err)
	}
	if err := e.Return(); err != nil {
		t.Fatalf("error: %v\n", err)
	}

	got := e.State().Content().Blocks()
	want := []content.Block{
		{Key: "q", Type: content.Blockquote, Text: "wise words"},
		{Key: "new1", Type: content.Unstyled},
	}

	if !cmp.Equal(got, want) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got, want))
	}
}

func TestApplyOverlappingTypes(t *testing.T) {
	doc := content.MustDocument(
		content.Block{Key: "a", Type: "callout", Text: "important text"},
		content.Block{Key: "b", Type: "callout", Text: ""},
	)

	tests := []struct {
		description       string
		sel               content.Selection
		expectedKeys      []string
		expectedSelection content.Selection
	}{
		{description: "end of non-empty block keeps the block",
			sel:               content.Caret("a", 14),
			expectedKeys:      []string{"a", "new1", "b"},
			expectedSelection: content.Caret("new1", 0)},

		{description: "start of non-empty block keeps the block",
			sel:               content.Caret("a", 0),
			expectedKeys:      []string{"new1", "a", "b"},
			expectedSelection: content.Caret("a", 0)},

		{description: "empty block is discarded",
			sel:               content.Caret("b", 0),
			expectedKeys:      []string{"a", "new1"},
			expectedSelection: content.Caret("new1", 0)},
	}

	for _, tc := range tests {
		tr := New(Options{
			SingleBreakoutTypes: []string{"callout"},
			DoubleBreakoutTypes: []string{"callout"},
			KeyFunc:             content.SequentialKeys("new"),
		})

		res := tr.Apply(doc, tc.sel)
		if !res.Handled {
			t.Errorf("(%s) expected breakout to be handled\n", tc.description)
			continue
		}

		if !cmp.Equal(res.Content.Keys(), tc.expectedKeys) {
			t.Errorf("(%s) wrong block order, diff: %v\n", tc.description, cmp.Diff(res.Content.Keys(), tc.expectedKeys))
		}

		if !cmp.Equal(res.Selection, tc.expectedSelection) {
			t.Errorf("(%s) wrong selection, diff: %v\n", tc.description, cmp.Diff(res.Selection, tc.expectedSelection))
		}

		if got, ok := res.Content.Block("a"); !ok || got.Text != "important text" {
			t.Errorf("(%s) text of block a was lost: %+v\n", tc.description, got)
		}
	}
}
