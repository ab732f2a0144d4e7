package naming

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

// Named describes an object that has a name.
type Named interface {
	// Name returns the name of the object.
	Name() string
}

// NamedBase is a base implementation of Named.
type NamedBase struct {
	name string
}

// Name returns the name of the object.
func (b *NamedBase) Name() string {
	return b.name
}

// MakeNamedBase creates a new NamedBase. It panics if the name is not valid.
func MakeNamedBase(name string) NamedBase {
	NameMustBeValid(name)

	return NamedBase{name: name}
}

// ValidateName checks that a name can be used for a component. Names must be
// non-empty and may not contain white spaces or slashes, since they become
// keys in traces and monitor URLs.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}

	if strings.ContainsAny(name, " \t\n/") {
		return fmt.Errorf("name %q cannot contain white spaces or slashes", name)
	}

	return nil
}

// NameMustBeValid panics if the name cannot be used for a component.
func NameMustBeValid(name string) {
	if err := ValidateName(name); err != nil {
		log.Panic(err)
	}
}
