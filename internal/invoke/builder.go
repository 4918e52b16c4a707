// Package invoke assembles argument vectors for external toolchain drivers.
package invoke

import "modelopt/internal/optcfg"

// Builder incrementally constructs the argument vector for one external tool.
// Tokens appear in exactly the order the Add calls were made; the builder
// performs no canonicalization.
type Builder struct {
	args *optcfg.OptionSet
	argv []string
}

// New starts an argument vector with the driver path followed by whatever the
// Add methods emit from args.
func New(driver string, args *optcfg.OptionSet) *Builder {
	return &Builder{args: args, argv: []string{driver}}
}

// AddOptionWithRequiredArgs appends option followed by the values of every
// named attribute, but only when all of them are set and truthy on the option
// set. A single missing attribute skips the whole option.
func (b *Builder) AddOptionWithRequiredArgs(option string, attrs ...string) *Builder {
	for _, attr := range attrs {
		if !b.args.Has(attr) {
			return b
		}
	}
	b.argv = append(b.argv, option)
	for _, attr := range attrs {
		b.argv = append(b.argv, b.args.Values(attr)...)
	}
	return b
}

// AddOptionWithValues appends option followed by the literal values given,
// without consulting the option set.
func (b *Builder) AddOptionWithValues(option string, values ...string) *Builder {
	b.argv = append(b.argv, option)
	b.argv = append(b.argv, values...)
	return b
}

// AddFlagIfPresent appends the bare flag when the named attribute is set and
// truthy.
func (b *Builder) AddFlagIfPresent(option, attr string) *Builder {
	if b.args.Has(attr) {
		b.argv = append(b.argv, option)
	}
	return b
}

// Args returns the accumulated argument vector.
func (b *Builder) Args() []string {
	out := make([]string, len(b.argv))
	copy(out, b.argv)
	return out
}
