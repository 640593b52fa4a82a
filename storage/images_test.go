package storage

import (
	"context"
	"encoding/base64"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"logos/b.png":         {Data: []byte("bbb")},
		"logos/a.jpg":         {Data: []byte("aaa")},
		"logos/.DS_Store":     {Data: []byte("x")},
		"players/default.png": {Data: []byte("ppp")},
	}

	images, err := LoadDefaults(context.Background(), NewFSImageSource(fsys), DefaultLayout())
	require.NoError(t, err)

	require.Len(t, images.TeamLogos, 2)
	assert.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString([]byte("aaa")), images.TeamLogos[0])
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("bbb")), images.TeamLogos[1])
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("ppp")), images.PlayerPhoto)
}

func TestLoadDefaults_MissingDirectories(t *testing.T) {
	images, err := LoadDefaults(context.Background(), NewFSImageSource(fstest.MapFS{}), DefaultLayout())
	require.NoError(t, err)
	assert.Empty(t, images.TeamLogos)
	assert.Empty(t, images.PlayerPhoto)
}

func TestLocalImageSource_Get(t *testing.T) {
	src := NewFSImageSource(fstest.MapFS{"logos/a.png": {Data: []byte("a")}})

	data, _, err := src.Get(context.Background(), "logos/a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)

	_, _, err = src.Get(context.Background(), "logos/missing.png")
	assert.ErrorIs(t, err, ErrImageNotFound)
}
