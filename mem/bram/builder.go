package bram

import (
	"errors"
	"fmt"

	"github.com/sarchlab/bram/sim"
	"github.com/sarchlab/bram/sim/naming"
)

// Builder can build block RAMs.
type Builder struct {
	depth     int
	width     int
	domain    *sim.Domain
	initFile  string
	initWords []Word
	hasInit   bool
}

// MakeBuilder returns a Builder with a 1 GHz clock domain named Clk.
func MakeBuilder() Builder {
	return Builder{
		domain: sim.NewDomain("Clk", 1*sim.GHz),
	}
}

// WithDepth sets the number of words.
func (b Builder) WithDepth(depth int) Builder {
	b.depth = depth
	return b
}

// WithWidth sets the number of bits per word.
func (b Builder) WithWidth(width int) Builder {
	b.width = width
	return b
}

// WithDomain sets the clock domain of the memory.
func (b Builder) WithDomain(domain *sim.Domain) Builder {
	b.domain = domain
	return b
}

// WithInitFile loads the initial contents from a text file with one binary
// word per line. The file must have exactly depth lines.
func (b Builder) WithInitFile(path string) Builder {
	b.initFile = path
	return b
}

// WithInitWords sets the initial contents. There must be exactly depth words
// of the memory width.
func (b Builder) WithInitWords(words []Word) Builder {
	b.initWords = words
	b.hasInit = true

	return b
}

// Build creates a memory. Without initial contents, every cell starts
// Undefined. Configuration errors are returned and no memory is created.
func (b Builder) Build(name string) (*Comp, error) {
	naming.NameMustBeValid(name)

	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}

	array, err := b.buildArray()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}

	c := &Comp{
		NamedBase: naming.MakeNamedBase(name),
		domain:    b.domain,
		array:     array,
		register:  Undefined(b.width),
	}

	return c, nil
}

func (b Builder) validate() error {
	if b.depth <= 0 {
		return fmt.Errorf("depth must be positive, got %d", b.depth)
	}

	if b.width < 0 {
		return fmt.Errorf("width cannot be negative, got %d", b.width)
	}

	if b.domain == nil {
		return errors.New("clock domain is not set")
	}

	if b.initFile != "" && b.hasInit {
		return errors.New("both an init file and init words are given")
	}

	return nil
}

func (b Builder) buildArray() (*Array, error) {
	switch {
	case b.initFile != "":
		words, err := LoadFile(b.initFile, b.width)
		if err != nil {
			return nil, err
		}

		if len(words) != b.depth {
			return nil, &DepthMismatchError{
				Source: b.initFile,
				Depth:  b.depth,
				Words:  len(words),
			}
		}

		return NewArray(b.width, words), nil
	case b.hasInit:
		if len(b.initWords) != b.depth {
			return nil, &DepthMismatchError{
				Source: "init words",
				Depth:  b.depth,
				Words:  len(b.initWords),
			}
		}

		for i, w := range b.initWords {
			if w.Width() != b.width {
				return nil, fmt.Errorf(
					"init word %d has width %d, want %d", i, w.Width(), b.width)
			}
		}

		return NewArray(b.width, b.initWords), nil
	default:
		return NewUndefinedArray(b.width, b.depth), nil
	}
}
