package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"page-relay/internal/domain/model"
	"page-relay/internal/domain/ports"
)

const (
	// DefaultBaseURL is the public Graph API host.
	DefaultBaseURL = "https://graph.facebook.com"
	// DefaultVersion is the Graph API version posts are read with.
	DefaultVersion = "v18.0"

	postFields     = "message,created_time,full_picture,permalink_url,attachments{media,type,url}"
	identityFields = "id,name"
)

var errEmptyPostID = errors.New("post id is empty")

// Client implements PostProvider and TokenInspector on top of the Graph API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	version     string
	accessToken string
}

var (
	_ ports.PostProvider   = (*Client)(nil)
	_ ports.TokenInspector = (*Client)(nil)
)

// Options configures a Client.
type Options struct {
	BaseURL     string
	Version     string
	AccessToken string
	Timeout     time.Duration
}

// New creates a new Graph API client.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	version := opts.Version
	if version == "" {
		version = DefaultVersion
	}
	return &Client{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		baseURL:     baseURL,
		version:     version,
		accessToken: opts.AccessToken,
	}
}

// GetPost reads the details of a page post.
func (c *Client) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, errEmptyPostID
	}

	var payload graphPost
	if err := c.get(ctx, postID, postFields, &payload); err != nil {
		return nil, err
	}

	return payload.toModel(), nil
}

// InspectToken resolves the page the access token belongs to.
func (c *Client) InspectToken(ctx context.Context) (*ports.PageIdentity, error) {
	var payload struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.get(ctx, "me", identityFields, &payload); err != nil {
		return nil, err
	}
	if payload.ID == "" {
		return nil, fmt.Errorf("token resolved to an empty identity")
	}
	return &ports.PageIdentity{ID: payload.ID, Name: payload.Name}, nil
}

func (c *Client) get(ctx context.Context, node, fields string, out any) error {
	query := url.Values{}
	query.Set("fields", fields)
	query.Set("access_token", c.accessToken)
	endpoint := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.version, url.PathEscape(node), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", redact(err, c.accessToken))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, describeError(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// describeError extracts the Graph error message from a failed response body.
func describeError(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return fmt.Sprintf("%s (type=%s code=%d)", envelope.Error.Message, envelope.Error.Type, envelope.Error.Code)
	}
	return strings.TrimSpace(string(body))
}

// redact strips the access token from transport errors, which embed the request URL.
func redact(err error, token string) error {
	escaped := url.QueryEscape(token)
	if token == "" || !strings.Contains(err.Error(), escaped) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), escaped, "REDACTED"))
}

type graphPost struct {
	ID           string `json:"id"`
	Message      string `json:"message"`
	CreatedTime  string `json:"created_time"`
	FullPicture  string `json:"full_picture"`
	PermalinkURL string `json:"permalink_url"`
	Attachments  *struct {
		Data []graphAttachment `json:"data"`
	} `json:"attachments"`
}

type graphAttachment struct {
	Type           string          `json:"type"`
	URL            string          `json:"url"`
	Media          json.RawMessage `json:"media"`
	Subattachments *struct {
		Data []json.RawMessage `json:"data"`
	} `json:"subattachments"`
}

func (p graphPost) toModel() *model.Post {
	post := &model.Post{
		ID:           p.ID,
		Message:      p.Message,
		CreatedTime:  parseTime(p.CreatedTime),
		FullPicture:  p.FullPicture,
		PermalinkURL: p.PermalinkURL,
	}
	if p.Attachments == nil {
		return post
	}

	post.Attachments = make([]model.Attachment, 0, len(p.Attachments.Data))
	for _, a := range p.Attachments.Data {
		post.Attachments = append(post.Attachments, model.Attachment{
			Type:       model.ClassifyAttachment(a.Type),
			RawType:    a.Type,
			URL:        a.URL,
			MediaCount: a.mediaCount(),
		})
	}
	return post
}

func (a graphAttachment) mediaCount() int {
	trimmed := bytes.TrimSpace(a.Media)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err == nil {
			return len(items)
		}
	}
	if a.Subattachments != nil {
		return len(a.Subattachments.Data)
	}
	return 0
}

var timeLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
}

func parseTime(val string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t
		}
	}
	return time.Time{}
}
