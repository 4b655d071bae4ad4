package publisher

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultAPIBase is the GitHub REST API base.
const DefaultAPIBase = "https://api.github.com"

// ErrPublishFailed reports that the remote update was rejected.
var ErrPublishFailed = errors.New("publish failed")

// GitHubPublisher uploads the rendered newsletter to a GitHub Pages repo via
// the contents API: read the current file SHA, then write conditioned on it.
type GitHubPublisher struct {
	APIBase  string
	Token    string
	Username string
	Repo     string
	FilePath string
	Client   *http.Client
	Now      func() time.Time
}

// NewGitHubPublisher creates a publisher with optional proxy support.
func NewGitHubPublisher(token, username, repo, filePath, proxyURL string) *GitHubPublisher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &GitHubPublisher{
		APIBase:  DefaultAPIBase,
		Token:    token,
		Username: username,
		Repo:     repo,
		FilePath: filePath,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Now: time.Now,
	}
}

// Enabled reports whether credentials are configured. When false the publish
// step is skipped entirely and performs no network calls.
func (p *GitHubPublisher) Enabled() bool {
	return p.Token != "" && p.Username != ""
}

// PagesURL is the public URL the newsletter is served from.
func (p *GitHubPublisher) PagesURL() string {
	return fmt.Sprintf("https://%s.github.io/%s", p.Username, p.Repo)
}

func (p *GitHubPublisher) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", p.APIBase, p.Username, p.Repo, p.FilePath)
}

// currentSHA reads the SHA of the remote file. An absent file yields an empty
// SHA, which the contents API accepts as "create".
func (p *GitHubPublisher) currentSHA() (string, error) {
	req, err := http.NewRequest(http.MethodGet, p.contentsURL(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "token "+p.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("read remote sha: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("read remote sha: status %d, body: %s", resp.StatusCode, string(body))
	}

	var current struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&current); err != nil {
		return "", fmt.Errorf("decode remote sha: %w", err)
	}
	return current.SHA, nil
}

// Publish uploads the rendered document and returns its public URL.
func (p *GitHubPublisher) Publish(html string) (string, error) {
	sha, err := p.currentSHA()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	payload := map[string]string{
		"message": "Auto-update newsletter - " + p.Now().Format("2006-01-02"),
		"content": base64.StdEncoding.EncodeToString([]byte(html)),
	}
	if sha != "" {
		payload["sha"] = sha
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, p.contentsURL(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "token "+p.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d, body: %s", ErrPublishFailed, resp.StatusCode, string(respBody))
	}
	return p.PagesURL(), nil
}
