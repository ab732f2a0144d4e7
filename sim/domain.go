package sim

import (
	"fmt"
	"log"
)

// Domain is a clock domain. Memories that share a Domain are stepped by the
// same clock. The domain only tags the cycle stream; it never changes what a
// memory computes in a cycle.
type Domain struct {
	name string
	freq Freq
}

// NewDomain creates a new Domain
func NewDomain(name string, freq Freq) *Domain {
	if name == "" {
		log.Panic("domain name cannot be empty")
	}

	if freq <= 0 {
		log.Panicf("domain %s must have a positive frequency", name)
	}

	return &Domain{name: name, freq: freq}
}

// Name returns the name of the domain.
func (d *Domain) Name() string {
	return d.name
}

// Freq returns the clock frequency of the domain.
func (d *Domain) Freq() Freq {
	return d.freq
}

// String prints the domain as name@frequency.
func (d *Domain) String() string {
	return fmt.Sprintf("%s@%gHz", d.name, float64(d.freq))
}
