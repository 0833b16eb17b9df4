package wikidocs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultBaseURL is the production Wikidocs API root.
const DefaultBaseURL = "https://wikidocs.net/napi"

// Client communicates with the Wikidocs HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListBooks returns the books owned by the token's user.
func (c *Client) ListBooks(ctx context.Context) ([]BookSummary, error) {
	var books []BookSummary
	if err := c.getJSON(ctx, "/books/", &books); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// GetBook retrieves a book together with its full page forest. For large
// books the API may truncate the page list.
func (c *Client) GetBook(ctx context.Context, bookID int) (*Book, error) {
	var book Book
	if err := c.getJSON(ctx, "/books/"+strconv.Itoa(bookID)+"/", &book); err != nil {
		return nil, fmt.Errorf("get book %d: %w", bookID, err)
	}
	return &book, nil
}

// GetPage retrieves a single page by ID.
func (c *Client) GetPage(ctx context.Context, pageID int) (*Page, error) {
	var page Page
	if err := c.getJSON(ctx, "/pages/"+strconv.Itoa(pageID)+"/", &page); err != nil {
		return nil, fmt.Errorf("get page %d: %w", pageID, err)
	}
	return &page, nil
}

// SavePage updates the page with the given ID, or creates a new page when
// pageID is CreatePageID. Depth and seq are always sent as zero; the server
// derives both from parent_id.
func (c *Client) SavePage(ctx context.Context, pageID int, req PageRequest) (*Page, error) {
	req.Depth = 0
	req.Seq = 0

	var page Page
	if err := c.putJSON(ctx, "/pages/"+strconv.Itoa(pageID)+"/", req, &page); err != nil {
		return nil, fmt.Errorf("save page %d: %w", pageID, err)
	}
	return &page, nil
}

// CreatePage creates a new page in a book. parentID zero means top level.
func (c *Client) CreatePage(ctx context.Context, bookID int, subject, content string, parentID int, openYN string) (*Page, error) {
	if openYN == "" {
		openYN = "Y"
	}
	return c.SavePage(ctx, CreatePageID, PageRequest{
		ID:       0,
		Subject:  subject,
		Content:  content,
		ParentID: parentID,
		BookID:   bookID,
		OpenYN:   openYN,
	})
}

// BlogProfile returns the blog profile for the token's user. The schema is
// owned by the remote side, so it is passed through untyped.
func (c *Client) BlogProfile(ctx context.Context) (map[string]any, error) {
	var profile map[string]any
	if err := c.getJSON(ctx, "/blog/profile/", &profile); err != nil {
		return nil, fmt.Errorf("blog profile: %w", err)
	}
	return profile, nil
}

// ListBlogPosts returns one page of the blog post listing (1-based).
func (c *Client) ListBlogPosts(ctx context.Context, page int) (map[string]any, error) {
	if page < 1 {
		page = 1
	}
	var list map[string]any
	if err := c.getJSON(ctx, "/blog/list/"+strconv.Itoa(page), &list); err != nil {
		return nil, fmt.Errorf("list blog posts page %d: %w", page, err)
	}
	return list, nil
}

// GetBlogPost retrieves a single blog post by ID.
func (c *Client) GetBlogPost(ctx context.Context, blogID int) (map[string]any, error) {
	var post map[string]any
	if err := c.getJSON(ctx, "/blog/"+strconv.Itoa(blogID), &post); err != nil {
		return nil, fmt.Errorf("get blog post %d: %w", blogID, err)
	}
	return post, nil
}

// CreateBlogPost creates a new blog post.
func (c *Client) CreateBlogPost(ctx context.Context, req BlogPostRequest) (map[string]any, error) {
	var result map[string]any
	if err := c.postJSON(ctx, "/blog/create/", req, &result); err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return result, nil
}

// UpdateBlogPost updates an existing blog post.
func (c *Client) UpdateBlogPost(ctx context.Context, blogID int, req BlogPostRequest) (map[string]any, error) {
	var result map[string]any
	if err := c.putJSON(ctx, "/blog/"+strconv.Itoa(blogID)+"/", req, &result); err != nil {
		return nil, fmt.Errorf("update blog post %d: %w", blogID, err)
	}
	return result, nil
}

// UploadPageImage uploads a local image file for use in a page.
func (c *Client) UploadPageImage(ctx context.Context, pageID int, filePath string) (map[string]any, error) {
	return c.uploadImage(ctx, "/images/upload/", filePath, map[string]string{
		"page_id": strconv.Itoa(pageID),
	})
}

// UploadBlogImage uploads a local image file for use in a blog post.
func (c *Client) UploadBlogImage(ctx context.Context, blogID int, filePath string) (map[string]any, error) {
	return c.uploadImage(ctx, "/blog/images/upload/", filePath, map[string]string{
		"blog_id": strconv.Itoa(blogID),
	})
}

func (c *Client) uploadImage(ctx context.Context, endpoint, filePath string, fields map[string]string) (map[string]any, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy upload file: %w", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("Authorization", "Token "+c.token)

	var result map[string]any
	if err := c.do(httpReq, &result); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.sendJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) putJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Authorization", "Token "+c.token)

	return c.do(httpReq, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{
			Kind:       kindForStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
