package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleServiceClient_FindArticle(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/api/articles/1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":1,"title":"Hello"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":"Article not found"}`))
		}
	}))
	defer server.Close()

	c := NewArticleServiceClient(server.URL+"/", nil)
	ctx := WithBearerToken(context.Background(), "tok")

	article, err := c.FindArticle(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, uint(1), article.ID)
	assert.Equal(t, "Hello", article.Title)
	assert.Equal(t, "Bearer tok", gotAuth)

	missing, err := c.FindArticle(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.Equal(t, StateClosed, c.Breaker().State())
}

func TestUserServiceClient_FindUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/5", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":5,"username":"alice"}}`))
	}))
	defer server.Close()

	user, err := NewUserServiceClient(server.URL, nil).FindUser(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
}

func TestServiceClient_ServerErrorTripsBreaker(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewUserServiceClient(server.URL, nil)
	ctx := context.Background()

	for i := 0; i < DefaultMaxFailures; i++ {
		user, err := c.FindUser(ctx, 5)
		assert.Nil(t, user)
		assert.True(t, errors.Is(err, ErrUnexpectedStatus))
	}
	assert.Equal(t, StateOpen, c.Breaker().State())

	_, err := c.FindUser(ctx, 5)
	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.Equal(t, int32(DefaultMaxFailures), atomic.LoadInt32(&hits))
}

func TestServiceClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	article, err := NewArticleServiceClient(server.URL, nil).FindArticle(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, article)
}

func TestServiceClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewArticleServiceClient(url, nil).FindArticle(context.Background(), 1)
	assert.Error(t, err)
}
