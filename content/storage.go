package content

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk representation of a document.
type file struct {
	Blocks []Block `yaml:"blocks"`
}

// Decode reads a YAML document. Blocks without a key receive one from fn,
// blocks without a type become unstyled.
func Decode(r io.Reader, fn KeyFunc) (Document, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}

	if fn == nil {
		fn = RandomKey
	}

	// Keys handed out here must not collide with keys later in the file.
	taken := make(map[string]bool, len(f.Blocks))
	for _, block := range f.Blocks {
		taken[block.Key] = true
	}

	blocks := make([]Block, 0, len(f.Blocks))
	for _, block := range f.Blocks {
		if block.Key == "" {
			key, err := unusedKey(taken, fn)
			if err != nil {
				return Document{}, err
			}
			block.Key = key
		}
		if block.Type == "" {
			block.Type = Unstyled
		}
		blocks = append(blocks, block)
	}

	return NewDocument(blocks...)
}

// Encode writes the document as YAML.
func Encode(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file{Blocks: doc.Blocks()}); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return enc.Close()
}

// Load reads a document from a YAML file.
func Load(path string, fn KeyFunc) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	return Decode(f, fn)
}

// Save writes the document to a YAML file.
func Save(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func unusedKey(taken map[string]bool, fn KeyFunc) (string, error) {
	for i := 0; i < MaxKeyAttempts; i++ {
		key := fn()
		if key != "" && !taken[key] {
			taken[key] = true
			return key, nil
		}
	}
	return "", ErrKeyExhausted
}
