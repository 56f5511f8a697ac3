// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tips

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProjectCreation(t *testing.T) {
	t.Parallel()

	got := Default().Lookup(ProjectCreation)
	require.Len(t, got, 6)

	first := got[0]
	assert.Equal(t, "Did you know?", first.Title)
	assert.True(t, first.Closable)
	require.NotNil(t, first.Link)
	assert.Equal(t, "Learn more", first.Link.Label)
	assert.Equal(t,
		"https://docs.humansignal.com/guide/manage_projects#Create-workspaces-to-organize-projects",
		first.Link.URL)

	assert.Equal(t, "Unlock faster access provisioning", got[1].Title)
	assert.Equal(t, "https://labelstud.io/guide/labeling#Label-with-collaborators", got[5].Link.URL)
}

func TestDefaultSatisfiesInvariants(t *testing.T) {
	t.Parallel()

	c := Default()
	require.NotEmpty(t, c.Keys())

	for _, key := range c.Keys() {
		seq := c.Lookup(key)
		assert.NotEmpty(t, seq, key)

		for i, tip := range seq {
			assert.NoError(t, tip.Validate(), "%s[%d]", key, i)
		}
	}

	assert.NoError(t, c.Table().Validate())
}

func TestLookupIsDeterministic(t *testing.T) {
	t.Parallel()

	c := Default()
	first := c.Lookup(ProjectCreation)

	for range 10 {
		if diff := cmp.Diff(first, c.Lookup(ProjectCreation)); diff != "" {
			t.Fatalf("Lookup() changed between calls (-first +again):\n%s", diff)
		}
	}
}

func TestLookupMiss(t *testing.T) {
	t.Parallel()

	c := Default()

	assert.Empty(t, c.Lookup("doesNotExist"))
	assert.False(t, c.Has("doesNotExist"))
	assert.True(t, c.Has(ProjectCreation))

	var empty *Collection

	assert.Empty(t, empty.Lookup(ProjectCreation))
	assert.Empty(t, empty.Keys())
	assert.Zero(t, empty.Len())
	assert.Empty(t, empty.Table())
}

func TestLookupReturnsCopies(t *testing.T) {
	t.Parallel()

	c := Default()

	got := c.Lookup(ProjectCreation)
	got[0].Title = "changed"
	got[0].Link.URL = "https://example.com"
	got = append(got[:1], got[2:]...)

	again := c.Lookup(ProjectCreation)
	assert.Len(t, again, 6)
	assert.Equal(t, "Did you know?", again[0].Title)
	assert.Equal(t,
		"https://docs.humansignal.com/guide/manage_projects#Create-workspaces-to-organize-projects",
		again[0].Link.URL)
	assert.Equal(t, "Unlock faster access provisioning", again[1].Title)
	assert.Len(t, got, 5)

	table := c.Table()
	table[ProjectCreation][0].Closable = false
	delete(table, ProjectCreation)

	assert.True(t, c.Has(ProjectCreation))
	assert.True(t, c.Lookup(ProjectCreation)[0].Closable)
}

func TestNewCopiesInput(t *testing.T) {
	t.Parallel()

	link := &Link{Label: "Docs", URL: "https://example.com/docs"}
	table := Table{"ctx": {{Title: "t", Content: "c", Link: link}}}

	c, err := New(table)
	require.NoError(t, err)

	link.URL = "https://example.com/other"
	table["ctx"][0].Title = "mutated"

	got := c.Lookup("ctx")
	assert.Equal(t, "t", got[0].Title)
	assert.Equal(t, "https://example.com/docs", got[0].Link.URL)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		table   Table
		wantErr []error
	}{
		{
			name:  "valid without link",
			table: Table{"a": {{Title: "t", Content: "c"}}},
		},
		{
			name:    "empty key",
			table:   Table{"": {{Title: "t", Content: "c"}}},
			wantErr: []error{ErrEmptyKey},
		},
		{
			name:    "empty context",
			table:   Table{"a": {}},
			wantErr: []error{ErrEmptyContext},
		},
		{
			name:    "missing title and content",
			table:   Table{"a": {{Closable: true}}},
			wantErr: []error{ErrEmptyTitle, ErrEmptyContent},
		},
		{
			name:    "link without label",
			table:   Table{"a": {{Title: "t", Content: "c", Link: &Link{URL: "https://example.com"}}}},
			wantErr: []error{ErrEmptyLinkLabel},
		},
		{
			name:    "relative link",
			table:   Table{"a": {{Title: "t", Content: "c", Link: &Link{Label: "l", URL: "/guide/setup"}}}},
			wantErr: []error{ErrInvalidLinkURL},
		},
		{
			name:    "scheme without host",
			table:   Table{"a": {{Title: "t", Content: "c", Link: &Link{Label: "l", URL: "mailto:someone"}}}},
			wantErr: []error{ErrInvalidLinkURL},
		},
		{
			name:    "unparsable link",
			table:   Table{"a": {{Title: "t", Content: "c", Link: &Link{Label: "l", URL: "http://[::1"}}}},
			wantErr: []error{ErrInvalidLinkURL},
		},
		{
			name: "violations in several contexts",
			table: Table{
				"a": {{Title: "t", Content: "c"}, {Content: "c"}},
				"b": {{Title: "t"}},
			},
			wantErr: []error{ErrEmptyTitle, ErrEmptyContent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(tt.table)
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				assert.Equal(t, len(tt.table), c.Len())

				return
			}

			require.Error(t, err)
			assert.Nil(t, c)

			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestValidateReportsLocation(t *testing.T) {
	t.Parallel()

	err := Table{"projectCreation": {{Title: "t", Content: "c"}, {Title: "t"}}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projectCreation[1]")
}

func TestMustNewPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNew(Table{"a": {{}}}) })
}

func TestNth(t *testing.T) {
	t.Parallel()

	c := MustNew(Table{"ctx": {
		{Title: "zero", Content: "c"},
		{Title: "one", Content: "c"},
		{Title: "two", Content: "c"},
	}})

	tests := []struct {
		step int
		want string
	}{
		{0, "zero"},
		{1, "one"},
		{2, "two"},
		{3, "zero"},
		{7, "one"},
		{-1, "two"},
		{-3, "zero"},
		{-4, "two"},
	}

	for _, tt := range tests {
		tip, ok := c.Nth("ctx", tt.step)
		require.True(t, ok, "step %d", tt.step)
		assert.Equal(t, tt.want, tip.Title, "step %d", tt.step)
	}

	_, ok := c.Nth("doesNotExist", 0)
	assert.False(t, ok)

	_, ok = (*Collection)(nil).Nth("ctx", 0)
	assert.False(t, ok)
}

func TestKeysSorted(t *testing.T) {
	t.Parallel()

	c := MustNew(Table{
		"zeta":  {{Title: "t", Content: "c"}},
		"alpha": {{Title: "t", Content: "c"}},
		"mid":   {{Title: "t", Content: "c"}},
	})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, c.Keys())
	assert.Equal(t, 3, c.Len())
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := MustNew(Table{
		"a": {{Title: "base a", Content: "c"}},
		"b": {{Title: "base b1", Content: "c"}, {Title: "base b2", Content: "c"}},
	})
	override := MustNew(Table{
		"b": {{Title: "override b", Content: "c"}},
		"c": {{Title: "override c", Content: "c"}},
	})
	last := MustNew(Table{
		"c": {{Title: "last c", Content: "c"}},
	})

	merged := base.Merge(override, nil, last)

	want := Table{
		"a": {{Title: "base a", Content: "c"}},
		"b": {{Title: "override b", Content: "c"}},
		"c": {{Title: "last c", Content: "c"}},
	}
	if diff := cmp.Diff(want, merged.Table()); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}

	// Inputs are untouched.
	assert.Len(t, base.Lookup("b"), 2)
	assert.False(t, base.Has("c"))
}

func TestConcurrentReads(t *testing.T) {
	t.Parallel()

	c := Default()

	var wg sync.WaitGroup

	for i := range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			seq := c.Lookup(ProjectCreation)
			seq[0].Title = "scratch"

			tip, ok := c.Nth(ProjectCreation, i)
			assert.True(t, ok)
			assert.NotEmpty(t, tip.Title)
		}()
	}

	wg.Wait()

	assert.Equal(t, "Did you know?", c.Lookup(ProjectCreation)[0].Title)
}
