package content

import (
	"errors"
	"fmt"
	"strings"
)

// Document is an ordered sequence of blocks, identified by unique keys.
// A Document is never modified in place: every operation returns a new one.
type Document struct {
	blocks []Block
	index  map[string]int
}

var (
	ErrEmptyKey      = errors.New("empty block key provided")
	ErrDuplicateKey  = errors.New("duplicate block key")
	ErrBlockNotFound = errors.New("block not found")
	ErrNegativeDepth = errors.New("negative block depth")
)

// NewDocument returns a document holding the given blocks in order.
func NewDocument(blocks ...Block) (Document, error) {
	doc := Document{
		blocks: make([]Block, 0, len(blocks)),
		index:  make(map[string]int, len(blocks)),
	}

	for _, block := range blocks {
		if block.Key == "" {
			return Document{}, ErrEmptyKey
		}
		if block.Depth < 0 {
			return Document{}, fmt.Errorf("block %q: %w", block.Key, ErrNegativeDepth)
		}
		if _, ok := doc.index[block.Key]; ok {
			return Document{}, fmt.Errorf("block %q: %w", block.Key, ErrDuplicateKey)
		}

		doc.index[block.Key] = len(doc.blocks)
		doc.blocks = append(doc.blocks, block)
	}

	return doc, nil
}

// MustDocument is like NewDocument but panics on invalid input.
func MustDocument(blocks ...Block) Document {
	doc, err := NewDocument(blocks...)
	if err != nil {
		panic(err)
	}
	return doc
}

// Len returns the number of blocks in the document.
func (doc Document) Len() int {
	return len(doc.blocks)
}

// Blocks returns a copy of the blocks in document order.
func (doc Document) Blocks() []Block {
	return append([]Block(nil), doc.blocks...)
}

// Keys returns the block keys in document order.
func (doc Document) Keys() []string {
	keys := make([]string, len(doc.blocks))
	for i, block := range doc.blocks {
		keys[i] = block.Key
	}
	return keys
}

// Index returns the position of the block, or -1 if it is not present.
func (doc Document) Index(key string) int {
	i, ok := doc.index[key]
	if !ok {
		return -1
	}
	return i
}

// Contains checks if a block is present in the document.
func (doc Document) Contains(key string) bool {
	_, ok := doc.index[key]
	return ok
}

// Block returns the block for the key.
func (doc Document) Block(key string) (Block, bool) {
	i, ok := doc.index[key]
	if !ok {
		return Block{}, false
	}
	return doc.blocks[i], true
}

// First returns the first block of the document.
func (doc Document) First() (Block, bool) {
	if len(doc.blocks) == 0 {
		return Block{}, false
	}
	return doc.blocks[0], true
}

// Before returns the blocks strictly preceding the block with the key.
func (doc Document) Before(key string) []Block {
	i := doc.Index(key)
	if i == -1 {
		return nil
	}
	return append([]Block(nil), doc.blocks[:i]...)
}

// After returns the blocks strictly following the block with the key.
func (doc Document) After(key string) []Block {
	i := doc.Index(key)
	if i == -1 {
		return nil
	}
	return append([]Block(nil), doc.blocks[i+1:]...)
}

// Replace returns a new document where the block with the key is replaced by
// the given sequence of blocks. An empty sequence removes the block.
func (doc Document) Replace(key string, replacement ...Block) (Document, error) {
	i := doc.Index(key)
	if i == -1 {
		return Document{}, fmt.Errorf("block %q: %w", key, ErrBlockNotFound)
	}

	blocks := make([]Block, 0, len(doc.blocks)-1+len(replacement))
	blocks = append(blocks, doc.blocks[:i]...)
	blocks = append(blocks, replacement...)
	blocks = append(blocks, doc.blocks[i+1:]...)

	return NewDocument(blocks...)
}

// Update returns a new document with the block sharing block.Key swapped for
// block.
func (doc Document) Update(block Block) (Document, error) {
	return doc.Replace(block.Key, block)
}

// Text returns the content of the document, one line per block.
func (doc Document) Text() string {
	texts := make([]string, len(doc.blocks))
	for i, block := range doc.blocks {
		texts[i] = block.Text
	}
	return strings.Join(texts, "\n")
}

// Equal reports whether both documents hold the same blocks in the same order.
func (doc Document) Equal(other Document) bool {
	if len(doc.blocks) != len(other.blocks) {
		return false
	}
	for i := range doc.blocks {
		if doc.blocks[i] != other.blocks[i] {
			return false
		}
	}
	return true
}
