package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eventkeeper/eventkeeper/internal/client/models"
)

// maxFeedEvents caps the event feed at the first page of combined results.
const maxFeedEvents = 10

// EventService fetches the public event feed from a jsonplaceholder-style
// REST API and combines posts/photos/users into feed records.
type EventService struct {
	baseURL string
	hc      *http.Client
}

func NewEventService(baseURL string) *EventService {
	return &EventService{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 5 * time.Second},
	}
}

type postResponse struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

type photoResponse struct {
	ID           int    `json:"id"`
	AlbumID      int    `json:"albumId"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

type userResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Comment is a reader comment attached to an event post.
type Comment struct {
	PostID int    `json:"postId"`
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// FetchEvents combines posts with the photo at the same index into the event
// feed. Missing photos degrade to empty image URLs.
func (s *EventService) FetchEvents(ctx context.Context) ([]models.AppEvent, error) {
	var posts []postResponse
	if err := s.getJSON(ctx, "/posts", &posts); err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	var photos []photoResponse
	if err := s.getJSON(ctx, "/photos", &photos); err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}

	events := make([]models.AppEvent, 0, len(posts))
	for i, p := range posts {
		event := models.AppEvent{ID: p.ID, Title: p.Title, Body: p.Body}
		if i < len(photos) {
			event.ThumbnailURL = photos[i].ThumbnailURL
			event.URL = photos[i].URL
		}
		events = append(events, event)
	}

	if len(events) > maxFeedEvents {
		events = events[:maxFeedEvents]
	}
	return events, nil
}

// FetchOrganizers combines users with the photo at the same index into
// organizer profiles.
func (s *EventService) FetchOrganizers(ctx context.Context) ([]models.Organizer, error) {
	var users []userResponse
	if err := s.getJSON(ctx, "/users", &users); err != nil {
		return nil, fmt.Errorf("fetching organizers: %w", err)
	}
	var photos []photoResponse
	if err := s.getJSON(ctx, "/photos", &photos); err != nil {
		return nil, fmt.Errorf("fetching organizers: %w", err)
	}

	organizers := make([]models.Organizer, 0, len(users))
	for i, u := range users {
		organizer := models.Organizer{ID: u.ID, Name: u.Name, Email: u.Email}
		if i < len(photos) {
			organizer.AvatarURL = photos[i].URL
		}
		organizers = append(organizers, organizer)
	}
	return organizers, nil
}

// FetchComments returns the comments for a single event post.
func (s *EventService) FetchComments(ctx context.Context, postID int) ([]Comment, error) {
	var comments []Comment
	if err := s.getJSON(ctx, fmt.Sprintf("/comments?postId=%d", postID), &comments); err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}
	return comments, nil
}

func (s *EventService) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
