package breakout

import (
	"fmt"
	"io"

	"github.com/burntcarrot/blockbreak/content"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultBlockType is the type given to a broken-out block.
const DefaultBlockType = content.Unstyled

var (
	// DefaultSingleBreakoutTypes break out from either edge of the block.
	DefaultSingleBreakoutTypes = []string{
		content.HeaderOne,
		content.HeaderTwo,
		content.HeaderThree,
		content.HeaderFour,
		content.HeaderFive,
		content.HeaderSix,
	}

	// DefaultDoubleBreakoutTypes break out only when the block is empty,
	// discarding it.
	DefaultDoubleBreakoutTypes = []string{
		content.Blockquote,
		content.UnorderedListItem,
		content.OrderedListItem,
		content.CodeBlock,
	}
)

// Options configures a Transform. A nil list means "use the default"; an
// empty, non-nil list disables that class of types.
type Options struct {
	DefaultBlockType string `yaml:"defaultBlockType"`

	// BreakoutBlockTypes lists single-breakout types. It is read only when
	// SingleBreakoutTypes is nil.
	BreakoutBlockTypes  []string `yaml:"breakoutBlockTypes"`
	SingleBreakoutTypes []string `yaml:"singleBreakoutTypes"`
	DoubleBreakoutTypes []string `yaml:"doubleBreakoutTypes"`

	KeyFunc content.KeyFunc    `yaml:"-"`
	Logger  logrus.FieldLogger `yaml:"-"`
}

// LoadOptions decodes options from YAML. Unknown fields are ignored.
func LoadOptions(r io.Reader) (Options, error) {
	var opts Options
	if err := yaml.NewDecoder(r).Decode(&opts); err != nil && err != io.EOF {
		return Options{}, fmt.Errorf("decode breakout options: %w", err)
	}
	return opts, nil
}

type config struct {
	defaultType string
	single      map[string]bool
	double      map[string]bool
}

func (opts Options) resolve() config {
	conf := config{
		defaultType: opts.DefaultBlockType,
		single:      typeSet(DefaultSingleBreakoutTypes),
		double:      typeSet(DefaultDoubleBreakoutTypes),
	}

	if conf.defaultType == "" {
		conf.defaultType = DefaultBlockType
	}

	switch {
	case opts.SingleBreakoutTypes != nil:
		conf.single = typeSet(opts.SingleBreakoutTypes)
	case opts.BreakoutBlockTypes != nil:
		conf.single = typeSet(opts.BreakoutBlockTypes)
	}

	if opts.DoubleBreakoutTypes != nil {
		conf.double = typeSet(opts.DoubleBreakoutTypes)
	}

	return conf
}

func typeSet(types []string) map[string]bool {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return set
}
