package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFolder(t *testing.T) {
	for _, s := range []string{"photos", "Photo", "photo"} {
		f, err := ParseFolder(s)
		require.NoError(t, err)
		assert.Equal(t, FolderPhotos, f)
	}
	for _, s := range []string{"videos", "Video", "video"} {
		f, err := ParseFolder(s)
		require.NoError(t, err)
		assert.Equal(t, FolderVideos, f)
	}
	_, err := ParseFolder("docs")
	assert.Error(t, err)
}

func TestFolderLayout(t *testing.T) {
	assert.Equal(t, 4, FolderPhotos.Columns())
	assert.Equal(t, 2, FolderVideos.Columns())
	assert.Equal(t, "Photo", FolderPhotos.Label())
	assert.Equal(t, "Video", FolderVideos.Label())
	assert.Equal(t, "/media/videos/a.mp4", MediaFile{Name: "a.mp4", Folder: FolderVideos}.URL())
}

func TestMediaFileURL_EscapesName(t *testing.T) {
	assert.Equal(t, "/media/photos/a%23b.png", MediaFile{Name: "a#b.png", Folder: FolderPhotos}.URL())
	assert.Equal(t, "/media/photos/a%3Fb.png", MediaFile{Name: "a?b.png", Folder: FolderPhotos}.URL())
	assert.Equal(t, "/media/photos/a%20b.png", MediaFile{Name: "a b.png", Folder: FolderPhotos}.URL())
}
