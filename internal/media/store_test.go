package media

import (
	"context"
	"testing"

	"github.com/space458/gallery-backend/storage"
	"github.com/stretchr/testify/assert"
)

// TestStore_BlobStrategy blob 策略字节随结果返回，不落盘
func TestStore_BlobStrategy(t *testing.T) {
	store := NewStore(nil)
	assert.True(t, store.Blob())

	processed := &Processed{Data: []byte("webp-bytes"), MimeType: "image/webp"}
	stored, err := store.Save(context.Background(), KindBanner, processed)
	assert.NoError(t, err)
	assert.Empty(t, stored.Path)
	assert.Equal(t, []byte("webp-bytes"), stored.Data)
	assert.Equal(t, "image/webp", stored.MimeType)

	// blob 策略的 Remove 是空操作
	assert.NoError(t, store.Remove(context.Background(), ""))
}

// TestStore_LocalRoundTrip 文件策略保存后按路径取回同样的字节
func TestStore_LocalRoundTrip(t *testing.T) {
	provider, err := storage.NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	store := NewStore(provider)
	assert.False(t, store.Blob())

	ctx := context.Background()
	content := []byte("transcoded-webp-content")
	stored, err := store.Save(ctx, KindPoster, &Processed{Data: content, MimeType: "image/webp"})
	assert.NoError(t, err)
	assert.NotEmpty(t, stored.Path)
	assert.Empty(t, stored.Data)
	assert.Contains(t, stored.Path, "posters/")

	got, err := store.Open(ctx, stored.Path, nil)
	assert.NoError(t, err)
	assert.Equal(t, content, got)
}

// TestStore_RemoveIdempotent 删除不存在的文件不算错误
func TestStore_RemoveIdempotent(t *testing.T) {
	provider, err := storage.NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	store := NewStore(provider)
	ctx := context.Background()

	stored, err := store.Save(ctx, KindNews, &Processed{Data: []byte("x"), MimeType: "image/webp"})
	assert.NoError(t, err)

	assert.NoError(t, store.Remove(ctx, stored.Path))
	assert.NoError(t, store.Remove(ctx, stored.Path))
	assert.NoError(t, store.Remove(ctx, "news/never-existed.webp"))
}

// TestStore_OpenMissing 行里既无字节也无路径时报 ErrNoContent
func TestStore_OpenMissing(t *testing.T) {
	provider, err := storage.NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	store := NewStore(provider)
	ctx := context.Background()

	_, err = store.Open(ctx, "", nil)
	assert.ErrorIs(t, err, ErrNoContent)

	_, err = store.Open(ctx, "banners/missing.webp", nil)
	assert.ErrorIs(t, err, ErrNoContent)

	// blob 策略下只有字节可用
	blobStore := NewStore(nil)
	got, err := blobStore.Open(ctx, "", []byte("inline"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("inline"), got)

	_, err = blobStore.Open(ctx, "banners/x.webp", nil)
	assert.ErrorIs(t, err, ErrNoContent)
}
