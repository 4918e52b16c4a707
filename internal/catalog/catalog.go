// Package catalog describes the optimization pass options understood by the
// toolchain.
//
// The catalog is a static table consulted only to validate and describe
// option names before an invocation is assembled; it carries no execution
// semantics. Construct it explicitly and pass it to whichever component needs
// it rather than reaching for shared state.
package catalog

import "sort"

// Option is one optimization pass flag with its help text.
type Option struct {
	Name string
	Help string
}

// Catalog is an immutable set of pass options.
type Catalog struct {
	options []Option
	index   map[string]int
}

// New builds a catalog from the given options. Later duplicates win so
// callers can layer tables.
func New(options []Option) *Catalog {
	c := &Catalog{index: make(map[string]int, len(options))}
	for _, opt := range options {
		if i, ok := c.index[opt.Name]; ok {
			c.options[i] = opt
			continue
		}
		c.index[opt.Name] = len(c.options)
		c.options = append(c.options, opt)
	}
	return c
}

// Lookup returns the option registered under name.
func (c *Catalog) Lookup(name string) (Option, bool) {
	i, ok := c.index[name]
	if !ok {
		return Option{}, false
	}
	return c.options[i], true
}

// Names returns every option name in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.options))
	for _, opt := range c.options {
		names = append(names, opt.Name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of registered options.
func (c *Catalog) Len() int {
	return len(c.options)
}
