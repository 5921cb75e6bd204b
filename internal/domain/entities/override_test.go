package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelector(t *testing.T) {
	s, err := ParseSelector("com.jfrog--xray-client--[1.0,2.0)")
	require.NoError(t, err)
	assert.Equal(t, Selector{Group: "com.jfrog", Artifact: "xray-client", VersionRange: "[1.0,2.0)"}, s)
	assert.Equal(t, "com.jfrog--xray-client--[1.0,2.0)", s.String())
}

func TestParseSelectorRejectsWrongArity(t *testing.T) {
	for _, id := range []string{"g--a", "g--a--1--extra", "plain", "g----1"} {
		t.Run(id, func(t *testing.T) {
			_, err := ParseSelector(id)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedSelector))
		})
	}
}

func TestParseMergeLine(t *testing.T) {
	spec, ok, err := ParseMergeLine("  The Apache Software License, Version 2.0 |Apache 2 | ASL 2.0  ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "The Apache Software License, Version 2.0", spec.Main)
	assert.Equal(t, []string{"Apache 2", "ASL 2.0"}, spec.Aliases)

	_, ok, err = ParseMergeLine("   ")
	assert.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = ParseMergeLine("# comment")
	assert.NoError(t, err)
	assert.False(t, ok)

	specs, err := ParseMergeLines([]string{"MIT|MIT License", "", "BSD"})
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "BSD", specs[1].Main)
	assert.Empty(t, specs[1].Aliases)
}

func TestParseMergeLineWithoutMain(t *testing.T) {
	for _, line := range []string{"| Apache-2.0", "  |Apache 2|ASL 2.0", "|"} {
		t.Run(line, func(t *testing.T) {
			_, ok, err := ParseMergeLine(line)
			assert.False(t, ok)
			assert.True(t, errors.Is(err, ErrMalformedMerge))
		})
	}

	specs, err := ParseMergeLines([]string{"MIT|MIT License", "# aliases", "| Apache-2.0"})
	assert.Nil(t, specs)
	assert.True(t, errors.Is(err, ErrMalformedMerge))
	assert.ErrorContains(t, err, "line 3")
}

func TestDuplicateAliasError(t *testing.T) {
	err := error(&DuplicateAliasError{Alias: "ASL", Main: "Apache-2.0", Previous: "Apache"})

	assert.True(t, errors.Is(err, ErrDuplicateAlias))
	assert.Contains(t, err.Error(), `"ASL"`)

	var dup *DuplicateAliasError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "Apache", dup.Previous)
}
