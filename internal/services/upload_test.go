package services

import (
	"errors"
	"io"
	"strings"
	"testing"

	"mediagallery/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("no space left on device")

// flakyStore пишет в настоящее хранилище, но падает на файле с именем failOn.
type flakyStore struct {
	*Storage
	failOn string
}

func (f *flakyStore) Save(r io.Reader, originalName string, folder models.Folder) (string, int64, error) {
	if originalName == f.failOn {
		return "", 0, errDiskFull
	}
	return f.Storage.Save(r, originalName, folder)
}

func uploads(names ...string) []UploadFile {
	files := make([]UploadFile, len(names))
	for i, n := range names {
		content := "bytes of " + n
		files[i] = UploadFile{
			Filename: n,
			Size:     int64(len(content)),
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader(content)), nil
			},
		}
	}
	return files
}

func TestSaveBatch_AllSucceed(t *testing.T) {
	s := newTestStorage(t)
	res := SaveBatch(s, models.FolderPhotos, uploads("a.jpg", "b.png", "c.jpeg"), BatchBestEffort)

	assert.True(t, res.OK())
	require.Len(t, res.Saved, 3)
	assert.Equal(t, "a.jpg", res.Saved[0].OriginalName)
	assert.True(t, strings.HasSuffix(res.Saved[1].StoredName, ".png"))

	files, err := s.List(models.FolderPhotos)
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestSaveBatch_BestEffortKeepsEarlierWrites(t *testing.T) {
	s := newTestStorage(t)
	store := &flakyStore{Storage: s, failOn: "b.png"}

	res := SaveBatch(store, models.FolderPhotos, uploads("a.jpg", "b.png", "c.jpeg"), BatchBestEffort)

	assert.False(t, res.OK())
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "b.png", res.Failed[0].OriginalName)
	assert.ErrorIs(t, res.Failed[0], errDiskFull)
	assert.Len(t, res.Saved, 2)
	assert.Empty(t, res.RolledBack)

	files, err := s.List(models.FolderPhotos)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestSaveBatch_AllOrNothingRollsBack(t *testing.T) {
	s := newTestStorage(t)
	store := &flakyStore{Storage: s, failOn: "c.jpeg"}

	res := SaveBatch(store, models.FolderPhotos, uploads("a.jpg", "b.png", "c.jpeg", "d.png"), BatchAllOrNothing)

	assert.False(t, res.OK())
	assert.Empty(t, res.Saved)
	assert.Len(t, res.RolledBack, 2)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "c.jpeg", res.Failed[0].OriginalName)

	files, err := s.List(models.FolderPhotos)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSaveBatch_OpenErrorIsPerFile(t *testing.T) {
	s := newTestStorage(t)
	files := uploads("a.mp4")
	files = append(files, UploadFile{
		Filename: "broken.mov",
		Open:     func() (io.ReadCloser, error) { return nil, assert.AnError },
	})

	res := SaveBatch(s, models.FolderVideos, files, BatchBestEffort)
	assert.Len(t, res.Saved, 1)
	require.Len(t, res.Failed, 1)
	assert.ErrorIs(t, res.Failed[0], assert.AnError)
	assert.Contains(t, res.Failed[0].Error(), "broken.mov")
}
