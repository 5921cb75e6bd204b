package text

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

type fileFetcher map[string]string

func (f fileFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	data, ok := f[location]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", location, fs.ErrNotExist)
	}
	return []byte(data), nil
}

func TestLoadMergeSpecs(t *testing.T) {
	fetcher := fileFetcher{
		"merges.txt": "# license aliases\r\nThe Apache Software License, Version 2.0 | Apache 2 | ASL 2.0\r\n\r\nMIT|MIT License\n",
	}

	specs, err := NewMergeSpecSource(fetcher, []string{"BSD-3-Clause|New BSD"}, "merges.txt").LoadMergeSpecs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []entities.MergeSpec{
		{Main: "BSD-3-Clause", Aliases: []string{"New BSD"}},
		{Main: "The Apache Software License, Version 2.0", Aliases: []string{"Apache 2", "ASL 2.0"}},
		{Main: "MIT", Aliases: []string{"MIT License"}},
	}, specs)
}

func TestLoadMergeSpecsMissingFile(t *testing.T) {
	_, err := NewMergeSpecSource(fileFetcher{}, nil, "absent.txt").LoadMergeSpecs(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadMergeSpecsRejectsLineWithoutMain(t *testing.T) {
	fetcher := fileFetcher{"merges.txt": "MIT|MIT License\n| Apache-2.0\n"}

	_, err := NewMergeSpecSource(fetcher, nil, "merges.txt").LoadMergeSpecs(context.Background())
	assert.True(t, errors.Is(err, entities.ErrMalformedMerge))
	assert.ErrorContains(t, err, "merges.txt")

	_, err = NewMergeSpecSource(fetcher, []string{"|ASL 2.0"}).LoadMergeSpecs(context.Background())
	assert.True(t, errors.Is(err, entities.ErrMalformedMerge))
}

func TestReadLinesLongLine(t *testing.T) {
	long := "Apache-2.0" + strings.Repeat("|Some Alias License", 4000)
	require.Greater(t, len(long), 70*1024)

	lines, err := ReadLines([]byte("MIT|X11\r\n" + long + "\n"))

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "MIT|X11", lines[0])
	assert.Equal(t, long, lines[1])
}
