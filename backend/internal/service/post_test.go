package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cathome-dev/cathome/shared/domain"
	internal_errors "github.com/cathome-dev/cathome/shared/errors"
)

// --- Mocks ---

type MockPostStorage struct {
	listPostsFunc      func(page, perPage int, keyword string) (int, []domain.Post, error)
	postByIdFunc       func(id domain.PostId) (domain.Post, error)
	createPostFunc     func(data domain.PostCreationData) (domain.PostId, error)
	updatePostFunc     func(id domain.PostId, data domain.PostUpdateData) error
	deletePostFunc     func(id domain.PostId) error
	incrementViewsFunc func(id domain.PostId) (int64, error)

	listPage          int
	listPerPage       int
	listKeyword       string
	createdData       *domain.PostCreationData
	updatedData       *domain.PostUpdateData
	deleteCalled      bool
	incrementedPostId domain.PostId
}

func (m *MockPostStorage) ListPosts(page, perPage int, keyword string) (int, []domain.Post, error) {
	m.listPage, m.listPerPage, m.listKeyword = page, perPage, keyword
	if m.listPostsFunc != nil {
		return m.listPostsFunc(page, perPage, keyword)
	}
	return 0, []domain.Post{}, nil
}

func (m *MockPostStorage) PostById(id domain.PostId) (domain.Post, error) {
	if m.postByIdFunc != nil {
		return m.postByIdFunc(id)
	}
	return domain.Post{Id: id, AuthorId: "author-1", Views: 10}, nil
}

func (m *MockPostStorage) CreatePost(data domain.PostCreationData) (domain.PostId, error) {
	m.createdData = &data
	if m.createPostFunc != nil {
		return m.createPostFunc(data)
	}
	return 1, nil
}

func (m *MockPostStorage) UpdatePost(id domain.PostId, data domain.PostUpdateData) error {
	m.updatedData = &data
	if m.updatePostFunc != nil {
		return m.updatePostFunc(id, data)
	}
	return nil
}

func (m *MockPostStorage) DeletePost(id domain.PostId) error {
	m.deleteCalled = true
	if m.deletePostFunc != nil {
		return m.deletePostFunc(id)
	}
	return nil
}

func (m *MockPostStorage) IncrementViews(id domain.PostId) (int64, error) {
	m.incrementedPostId = id
	if m.incrementViewsFunc != nil {
		return m.incrementViewsFunc(id)
	}
	return 11, nil
}

type MockImageStorage struct {
	uploadFunc func(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	deleteFunc func(ctx context.Context, publicURL string) error

	uploadedKeys []string
	deletedURLs  []string
}

func (m *MockImageStorage) Upload(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	m.uploadedKeys = append(m.uploadedKeys, objectKey)
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, objectKey, reader, size, contentType)
	}
	return "https://bucket.example.com/" + objectKey, nil
}

func (m *MockImageStorage) DeleteByURL(ctx context.Context, publicURL string) error {
	m.deletedURLs = append(m.deletedURLs, publicURL)
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, publicURL)
	}
	return nil
}

func newTestPost(storage *MockPostStorage, images *MockImageStorage) *Post {
	p := NewPost(storage, images, testPublicConfig())
	p.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return p
}

func testImage() *domain.PendingImage {
	return &domain.PendingImage{
		Filename:  "cat.jpg",
		SizeBytes: 4,
		MimeType:  "image/jpeg",
		Data:      strings.NewReader("data"),
	}
}

var testAuthor = domain.User{Id: "author-1", Email: "meow@example.com", Nickname: "nabi"}

// --- Tests ---

func TestPostList(t *testing.T) {
	t.Run("ClampsPageToOne", func(t *testing.T) {
		storage := &MockPostStorage{}
		p := newTestPost(storage, &MockImageStorage{})

		_, _, err := p.List(0, "")
		require.NoError(t, err)
		assert.Equal(t, 1, storage.listPage)
		assert.Equal(t, 6, storage.listPerPage)
	})

	t.Run("PassesKeyword", func(t *testing.T) {
		storage := &MockPostStorage{}
		p := newTestPost(storage, &MockImageStorage{})

		_, _, err := p.List(3, "tuna")
		require.NoError(t, err)
		assert.Equal(t, 3, storage.listPage)
		assert.Equal(t, "tuna", storage.listKeyword)
	})
}

func TestPostView(t *testing.T) {
	storage := &MockPostStorage{}
	p := newTestPost(storage, &MockImageStorage{})

	post, err := p.View(42)
	require.NoError(t, err)
	assert.Equal(t, domain.PostId(42), storage.incrementedPostId)
	assert.Equal(t, int64(11), post.Views, "returned post carries the already-bumped counter")
}

func TestPostCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("WithoutImage", func(t *testing.T) {
		storage := &MockPostStorage{}
		images := &MockImageStorage{}
		p := newTestPost(storage, images)

		id, err := p.Create(ctx, testAuthor, "hello", "first post", nil)
		require.NoError(t, err)
		assert.Equal(t, domain.PostId(1), id)
		require.NotNil(t, storage.createdData)
		assert.Nil(t, storage.createdData.ImageURL)
		assert.Equal(t, "nabi", storage.createdData.AuthorNickname)
		assert.Empty(t, images.uploadedKeys)
	})

	t.Run("WithImage", func(t *testing.T) {
		storage := &MockPostStorage{}
		images := &MockImageStorage{}
		p := newTestPost(storage, images)

		_, err := p.Create(ctx, testAuthor, "hello", "first post", testImage())
		require.NoError(t, err)
		require.Len(t, images.uploadedKeys, 1)
		assert.Equal(t, "author-1/1700000000000_cat.jpg", images.uploadedKeys[0])
		require.NotNil(t, storage.createdData.ImageURL)
		assert.Equal(t, "https://bucket.example.com/author-1/1700000000000_cat.jpg", *storage.createdData.ImageURL)
	})

	t.Run("EmptyTitleRejectedBeforeUpload", func(t *testing.T) {
		storage := &MockPostStorage{}
		images := &MockImageStorage{}
		p := newTestPost(storage, images)

		_, err := p.Create(ctx, testAuthor, "", "content", testImage())
		var statusErr *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
		assert.Empty(t, images.uploadedKeys)
	})

	t.Run("TitleTooLong", func(t *testing.T) {
		p := newTestPost(&MockPostStorage{}, &MockImageStorage{})

		_, err := p.Create(ctx, testAuthor, strings.Repeat("a", 101), "content", nil)
		var statusErr *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	})

	t.Run("InsertFailureCleansUpUpload", func(t *testing.T) {
		dbErr := errors.New("insert failed")
		storage := &MockPostStorage{createPostFunc: func(domain.PostCreationData) (domain.PostId, error) { return -1, dbErr }}
		images := &MockImageStorage{}
		p := newTestPost(storage, images)

		_, err := p.Create(ctx, testAuthor, "hello", "content", testImage())
		assert.ErrorIs(t, err, dbErr)
		require.Len(t, images.deletedURLs, 1, "orphaned object must be deleted")
		assert.Equal(t, "https://bucket.example.com/author-1/1700000000000_cat.jpg", images.deletedURLs[0])
	})
}

func TestPostUpdate(t *testing.T) {
	ctx := context.Background()
	oldURL := "https://bucket.example.com/author-1/old.jpg"

	existing := func(id domain.PostId) (domain.Post, error) {
		return domain.Post{Id: id, AuthorId: "author-1", ImageURL: &oldURL}, nil
	}

	t.Run("NonAuthorForbidden", func(t *testing.T) {
		storage := &MockPostStorage{postByIdFunc: existing}
		p := newTestPost(storage, &MockImageStorage{})

		err := p.Update(ctx, domain.User{Id: "someone-else"}, 42, "t", "c", nil)
		var statusErr *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
		assert.Nil(t, storage.updatedData)
	})

	t.Run("KeepsImageWhenNoneUploaded", func(t *testing.T) {
		storage := &MockPostStorage{postByIdFunc: existing}
		images := &MockImageStorage{}
		p := newTestPost(storage, images)

		err := p.Update(ctx, testAuthor, 42, "new title", "new content", nil)
		require.NoError(t, err)
		require.NotNil(t, storage.updatedData)
		assert.Nil(t, storage.updatedData.ImageURL, "nil means the stored image stays")
		assert.Empty(t, images.deletedURLs)
	})

	t.Run("ReplacesImageAndDeletesOld", func(t *testing.T) {
		storage := &MockPostStorage{postByIdFunc: existing}
		images := &MockImageStorage{}
		p := newTestPost(storage, images)

		err := p.Update(ctx, testAuthor, 42, "t", "c", testImage())
		require.NoError(t, err)
		require.NotNil(t, storage.updatedData.ImageURL)
		require.Len(t, images.deletedURLs, 1)
		assert.Equal(t, oldURL, images.deletedURLs[0])
	})

	t.Run("UpdateFailureCleansUpNewUpload", func(t *testing.T) {
		dbErr := errors.New("update failed")
		storage := &MockPostStorage{postByIdFunc: existing, updatePostFunc: func(domain.PostId, domain.PostUpdateData) error { return dbErr }}
		images := &MockImageStorage{}
		p := newTestPost(storage, images)

		err := p.Update(ctx, testAuthor, 42, "t", "c", testImage())
		assert.ErrorIs(t, err, dbErr)
		require.Len(t, images.deletedURLs, 1)
		assert.Equal(t, "https://bucket.example.com/author-1/1700000000000_cat.jpg", images.deletedURLs[0], "the new object is cleaned up, the old one stays")
	})
}

func TestPostDelete(t *testing.T) {
	ctx := context.Background()
	imageURL := "https://bucket.example.com/author-1/cat.jpg"

	t.Run("DeletesImageThenRow", func(t *testing.T) {
		storage := &MockPostStorage{postByIdFunc: func(id domain.PostId) (domain.Post, error) {
			return domain.Post{Id: id, AuthorId: "author-1", ImageURL: &imageURL}, nil
		}}
		images := &MockImageStorage{}
		p := newTestPost(storage, images)

		require.NoError(t, p.Delete(ctx, testAuthor, 42))
		assert.Equal(t, []string{imageURL}, images.deletedURLs)
		assert.True(t, storage.deleteCalled)
	})

	t.Run("ImageDeleteFailureDoesNotBlockRowDelete", func(t *testing.T) {
		storage := &MockPostStorage{postByIdFunc: func(id domain.PostId) (domain.Post, error) {
			return domain.Post{Id: id, AuthorId: "author-1", ImageURL: &imageURL}, nil
		}}
		images := &MockImageStorage{deleteFunc: func(context.Context, string) error { return errors.New("cos down") }}
		p := newTestPost(storage, images)

		require.NoError(t, p.Delete(ctx, testAuthor, 42))
		assert.True(t, storage.deleteCalled, "row delete proceeds even when the object store fails")
	})

	t.Run("NonAuthorForbidden", func(t *testing.T) {
		storage := &MockPostStorage{}
		p := newTestPost(storage, &MockImageStorage{})

		err := p.Delete(ctx, domain.User{Id: "someone-else"}, 42)
		var statusErr *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
		assert.False(t, storage.deleteCalled)
	})

	t.Run("MissingPost", func(t *testing.T) {
		storage := &MockPostStorage{postByIdFunc: func(domain.PostId) (domain.Post, error) {
			return domain.Post{}, internal_errors.NotFound("Post not found")
		}}
		p := newTestPost(storage, &MockImageStorage{})

		err := p.Delete(ctx, testAuthor, 42)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}
