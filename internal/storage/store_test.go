package storage_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/storage"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
)

// fakeS3 keeps objects in memory keyed by object key
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for key := range f.objects {
		if strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, s3types.Object{Key: aws.String(key)})
		}
	}
	return out, nil
}

// testStoreContract exercises the behaviour every backend shares
func testStoreContract(t *testing.T, newStore func(namespace string) storage.Store) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		store := newStore("missing")
		_, err := store.Get(ctx, "nothing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		store := newStore("roundtrip")
		require.NoError(t, store.Set(ctx, "recipes", []byte(`[{"id":"1"}]`)))

		got, err := store.Get(ctx, "recipes")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"1"}]`, string(got))
	})

	t.Run("set overwrites", func(t *testing.T) {
		store := newStore("overwrite")
		require.NoError(t, store.Set(ctx, "categories", []byte(`["A"]`)))
		require.NoError(t, store.Set(ctx, "categories", []byte(`["B"]`)))

		got, err := store.Get(ctx, "categories")
		require.NoError(t, err)
		assert.JSONEq(t, `["B"]`, string(got))
	})

	t.Run("remove", func(t *testing.T) {
		store := newStore("remove")
		require.NoError(t, store.Set(ctx, "currentUser", []byte(`{"id":"u1"}`)))
		require.NoError(t, store.Remove(ctx, "currentUser"))

		_, err := store.Get(ctx, "currentUser")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		// removing an absent key is not an error
		assert.NoError(t, store.Remove(ctx, "currentUser"))
	})

	t.Run("clear only touches its namespace", func(t *testing.T) {
		store := newStore("clear")
		other := newStore("clear-other")
		require.NoError(t, store.Set(ctx, "recipes", []byte(`[]`)))
		require.NoError(t, store.Set(ctx, "users", []byte(`[]`)))
		require.NoError(t, other.Set(ctx, "recipes", []byte(`[]`)))

		require.NoError(t, store.Clear(ctx))

		_, err := store.Get(ctx, "recipes")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = store.Get(ctx, "users")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = other.Get(ctx, "recipes")
		assert.NoError(t, err)
	})
}

func TestMemoryStore(t *testing.T) {
	// namespaces are separate instances for the in-memory backend
	stores := map[string]*storage.MemoryStore{}
	testStoreContract(t, func(namespace string) storage.Store {
		if s, ok := stores[namespace]; ok {
			return s
		}
		s := storage.NewMemoryStore()
		stores[namespace] = s
		return s
	})
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	value := []byte(`"abc"`)
	require.NoError(t, store.Set(ctx, "k", value))
	value[1] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(got))
}

func TestDatabaseStore(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	testStoreContract(t, func(namespace string) storage.Store {
		return storage.NewDatabaseStore(db, namespace)
	})
}

func TestS3Store(t *testing.T) {
	client := newFakeS3()
	testStoreContract(t, func(namespace string) storage.Store {
		return storage.NewS3Store(client, "recipebox-test", namespace)
	})
}

func TestS3StoreObjectLayout(t *testing.T) {
	client := newFakeS3()
	store := storage.NewS3Store(client, "bucket", "recipebox")

	require.NoError(t, store.Set(context.Background(), "recipes", []byte(`[]`)))
	assert.Contains(t, client.objects, "recipebox/recipes.json")
}

func TestRedisStore(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	testStoreContract(t, func(namespace string) storage.Store {
		return storage.NewRedisStore(client, namespace)
	})
}
