package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFeedServer(t *testing.T, posts, photos, users, comments any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload any
		switch r.URL.Path {
		case "/posts":
			payload = posts
		case "/photos":
			payload = photos
		case "/users":
			payload = users
		case "/comments":
			payload = comments
		default:
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchEventsZipsPostsWithPhotos(t *testing.T) {
	posts := []postResponse{
		{ID: 1, Title: "first", Body: "b1"},
		{ID: 2, Title: "second", Body: "b2"},
	}
	photos := []photoResponse{
		{ID: 10, URL: "https://img/1", ThumbnailURL: "https://thumb/1"},
	}
	srv := newFeedServer(t, posts, photos, nil, nil)

	events, err := NewEventService(srv.URL).FetchEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	require.Equal(t, "first", events[0].Title)
	require.Equal(t, "https://thumb/1", events[0].ThumbnailURL)
	require.Equal(t, "https://img/1", events[0].URL)

	// second post has no matching photo, image fields degrade to empty
	require.Equal(t, "second", events[1].Title)
	require.Equal(t, "", events[1].ThumbnailURL)
	require.Equal(t, "", events[1].URL)
}

func TestFetchEventsCapsFeed(t *testing.T) {
	var posts []postResponse
	var photos []photoResponse
	for i := 1; i <= 25; i++ {
		posts = append(posts, postResponse{ID: i, Title: fmt.Sprintf("post %d", i)})
		photos = append(photos, photoResponse{ID: i, URL: fmt.Sprintf("https://img/%d", i)})
	}
	srv := newFeedServer(t, posts, photos, nil, nil)

	events, err := NewEventService(srv.URL).FetchEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, maxFeedEvents)
	require.Equal(t, 1, events[0].ID)
	require.Equal(t, maxFeedEvents, events[len(events)-1].ID)
}

func TestFetchOrganizers(t *testing.T) {
	users := []userResponse{
		{ID: 1, Name: "Jane Doe", Email: "jane@example.com"},
		{ID: 2, Name: "John Roe", Email: "john@example.com"},
	}
	photos := []photoResponse{
		{ID: 10, URL: "https://img/1"},
	}
	srv := newFeedServer(t, nil, photos, users, nil)

	organizers, err := NewEventService(srv.URL).FetchOrganizers(context.Background())
	require.NoError(t, err)
	require.Len(t, organizers, 2)
	require.Equal(t, "Jane Doe", organizers[0].Name)
	require.Equal(t, "https://img/1", organizers[0].AvatarURL)
	require.Equal(t, "", organizers[1].AvatarURL)
}

func TestFetchComments(t *testing.T) {
	comments := []Comment{{PostID: 1, ID: 5, Name: "n", Email: "e", Body: "b"}}
	srv := newFeedServer(t, nil, nil, nil, comments)

	got, err := NewEventService(srv.URL).FetchComments(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, comments, got)
}

func TestFetchEventsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, err := NewEventService(srv.URL).FetchEvents(context.Background())
	require.Error(t, err)
}
