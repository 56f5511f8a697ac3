// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package tips holds the tip content table: short hint messages grouped by the
UI context that displays them.

A Collection is frozen when it is built. Every accessor hands out copies, so
a single Collection can be shared by any number of goroutines without
locking.
*/
package tips

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
)

// Validation errors.
var (
	ErrEmptyKey       = errors.New("context key is empty")
	ErrEmptyContext   = errors.New("context has no tips")
	ErrEmptyTitle     = errors.New("tip title is empty")
	ErrEmptyContent   = errors.New("tip content is empty")
	ErrEmptyLinkLabel = errors.New("tip link label is empty")
	ErrInvalidLinkURL = errors.New("tip link URL is not an absolute URL")
)

// Link is the optional "learn more" target of a tip.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Tip is a single displayable hint.
type Tip struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`

	// Closable reports whether the UI may offer a dismiss action.
	Closable bool  `json:"closable" yaml:"closable"`
	Link     *Link `json:"link,omitempty" yaml:"link,omitempty"`
}

// Clone returns a deep copy of t.
func (t Tip) Clone() Tip {
	if t.Link != nil {
		link := *t.Link
		t.Link = &link
	}

	return t
}

// Validate checks that t has a title and content, and that its link, if any,
// has a label and an absolute URL.
func (t Tip) Validate() error {
	var errs []error

	if t.Title == "" {
		errs = append(errs, ErrEmptyTitle)
	}

	if t.Content == "" {
		errs = append(errs, ErrEmptyContent)
	}

	if t.Link != nil {
		if t.Link.Label == "" {
			errs = append(errs, ErrEmptyLinkLabel)
		}

		if !isAbsoluteURL(t.Link.URL) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLinkURL, t.Link.URL))
		}
	}

	return errors.Join(errs...)
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return u.IsAbs() && u.Host != ""
}

// Table maps a context key to its ordered tips.
//
// Table is the plain form used for building and serializing collections.
// It is never shared with a Collection.
type Table map[string][]Tip

// Validate checks every key and tip in the table. All violations are
// reported, each prefixed with its location, e.g. "projectCreation[2]".
func (t Table) Validate() error {
	var errs []error

	for _, key := range slices.Sorted(maps.Keys(t)) {
		seq := t[key]

		if key == "" {
			errs = append(errs, ErrEmptyKey)
		}

		if len(seq) == 0 {
			errs = append(errs, fmt.Errorf("%s: %w", key, ErrEmptyContext))
		}

		for i, tip := range seq {
			if err := tip.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%s[%d]: %w", key, i, err))
			}
		}
	}

	return errors.Join(errs...)
}

func (t Table) clone() Table {
	out := make(Table, len(t))

	for key, seq := range t {
		out[key] = cloneTips(seq)
	}

	return out
}

func cloneTips(seq []Tip) []Tip {
	if seq == nil {
		return nil
	}

	out := make([]Tip, len(seq))
	for i, tip := range seq {
		out[i] = tip.Clone()
	}

	return out
}

// Collection is an immutable tip table.
//
// A nil *Collection is valid and behaves as an empty table.
type Collection struct {
	table Table
}

// New validates table and returns a Collection holding a private copy of it.
func New(table Table) (*Collection, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tip table: %w", err)
	}

	return &Collection{table: table.clone()}, nil
}

// MustNew is like New but panics if table is invalid.
// It is meant for tables written as literals.
func MustNew(table Table) *Collection {
	c, err := New(table)
	if err != nil {
		panic(err)
	}

	return c
}

// Lookup returns the tips registered under key, in order.
//
// An unregistered key yields nil. That is an ordinary outcome meaning
// "no tips available", not an error.
func (c *Collection) Lookup(key string) []Tip {
	if c == nil {
		return nil
	}

	return cloneTips(c.table[key])
}

// Has reports whether key is registered.
func (c *Collection) Has(key string) bool {
	if c == nil {
		return false
	}

	_, ok := c.table[key]

	return ok
}

// Keys returns the registered context keys in sorted order.
func (c *Collection) Keys() []string {
	if c == nil {
		return []string{}
	}

	return slices.Sorted(maps.Keys(c.table))
}

// Len returns the number of registered context keys.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}

	return len(c.table)
}

// Nth returns the tip a rotating display shows at the given step.
//
// The step wraps around the sequence in both directions, so -1 is the last
// tip. ok is false when key is unregistered.
func (c *Collection) Nth(key string, step int) (tip Tip, ok bool) {
	if c == nil {
		return Tip{}, false
	}

	seq := c.table[key]
	if len(seq) == 0 {
		return Tip{}, false
	}

	i := step % len(seq)
	if i < 0 {
		i += len(seq)
	}

	return seq[i].Clone(), true
}

// Table returns a deep copy of the collection's table.
func (c *Collection) Table() Table {
	if c == nil {
		return Table{}
	}

	return c.table.clone()
}

// Merge returns a new collection combining c with others.
//
// Keys are resolved last-wins: when several collections define the same key,
// the sequence from the last one replaces the earlier ones entirely.
func (c *Collection) Merge(others ...*Collection) *Collection {
	merged := c.Table()

	for _, other := range others {
		if other == nil {
			continue
		}

		for key, seq := range other.table {
			merged[key] = cloneTips(seq)
		}
	}

	return &Collection{table: merged}
}
