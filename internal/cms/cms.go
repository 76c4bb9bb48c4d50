// Package cms is the optional read path against a headless CMS whose
// API returns JSON shaped like the content document's sections. It is
// strictly best-effort: any section that fails to load falls back to
// the bundled document, and no failure is ever surfaced to a visitor.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/nijanthan/portfolio-cms/internal/content"
)

// DefaultTimeout bounds one section fetch.
const DefaultTimeout = 15 * time.Second

var schemeRe = regexp.MustCompile(`^https?://`)

// Client fetches sections from the CMS API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a CMS client. A base URL without a scheme gets
// https:// prepended. An empty base URL produces an unconfigured client
// whose fetches all fail (and therefore fall back).
func NewClient(baseURL, token string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL != "" && !schemeRe.MatchString(baseURL) {
		baseURL = "https://" + baseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Configured reports whether a CMS endpoint is set.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// get issues one API read. Every payload arrives as {"data": ...}.
func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("cms: base URL not configured")
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	url := c.baseURL + "/api" + path + sep + "populate=*"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("cms: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cms: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cms: request failed: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cms: failed to read response: %w", err)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("cms: failed to parse response: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("cms: failed to parse section payload: %w", err)
	}
	return nil
}

// FetchProfile fetches the profile single type.
func (c *Client) FetchProfile(ctx context.Context) (*content.Profile, error) {
	var p content.Profile
	if err := c.get(ctx, "/profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchSocials fetches the social-links single type.
func (c *Client) FetchSocials(ctx context.Context) (*content.Socials, error) {
	var s content.Socials
	if err := c.get(ctx, "/social-link", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// FetchExperience fetches the experience collection in display order.
func (c *Client) FetchExperience(ctx context.Context) ([]content.Experience, error) {
	var list []content.Experience
	if err := c.get(ctx, "/experiences?sort=order:asc", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FetchProjects fetches the projects collection in display order.
func (c *Client) FetchProjects(ctx context.Context) ([]content.Project, error) {
	var list []content.Project
	if err := c.get(ctx, "/projects?sort=order:asc", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FetchLatest fetches the latest-work collection in display order.
func (c *Client) FetchLatest(ctx context.Context) ([]content.LatestItem, error) {
	var list []content.LatestItem
	if err := c.get(ctx, "/latest-works?sort=order:asc", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FetchClients fetches the clients collection in display order.
func (c *Client) FetchClients(ctx context.Context) ([]content.Client, error) {
	var list []content.Client
	if err := c.get(ctx, "/clients?sort=order:asc", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FetchEducation fetches the education collection in display order.
func (c *Client) FetchEducation(ctx context.Context) ([]content.Education, error) {
	var list []content.Education
	if err := c.get(ctx, "/educations?sort=order:asc", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FetchCerts fetches the certifications collection in display order.
func (c *Client) FetchCerts(ctx context.Context) ([]content.Cert, error) {
	var list []content.Cert
	if err := c.get(ctx, "/certifications?sort=order:asc", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FetchSkills fetches the skills collection in display order.
func (c *Client) FetchSkills(ctx context.Context) ([]string, error) {
	var list []string
	if err := c.get(ctx, "/skills?sort=order:asc", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FetchCommunity fetches the community single type.
func (c *Client) FetchCommunity(ctx context.Context) (*content.Community, error) {
	var cm content.Community
	if err := c.get(ctx, "/community", &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}
