package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"webstories/checklist"
	"webstories/editor"
	"webstories/types"
)

// ChecklistClient is a thin HTTP client for the checklist session API.
type ChecklistClient struct {
	baseURL string
	client  *http.Client
}

// NewChecklistClient creates a new checklist client
func NewChecklistClient(baseURL string) *ChecklistClient {
	return &ChecklistClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type createSessionRequest struct {
	StoryID string `json:"storyId"`
}

type createSessionResponse struct {
	ID string `json:"id"`
}

// CreateSession opens a checklist session for storyID.
func (c *ChecklistClient) CreateSession(storyID string) (string, error) {
	var out createSessionResponse
	if _, err := c.do(http.MethodPost, "/api/checklist/sessions", createSessionRequest{StoryID: storyID}, http.StatusCreated, &out); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return out.ID, nil
}

// Evaluate runs the checklist for the session against story.
func (c *ChecklistClient) Evaluate(sessionID string, story *types.Story) (*checklist.Result, error) {
	var res checklist.Result
	if _, err := c.do(http.MethodPost, c.sessionPath(sessionID, "/evaluate"), story, http.StatusOK, &res); err != nil {
		return nil, fmt.Errorf("failed to evaluate: %w", err)
	}
	return &res, nil
}

// Result returns the last result of the session, or nil before the first pass.
func (c *ChecklistClient) Result(sessionID string) (*checklist.Result, error) {
	var res checklist.Result
	found, err := c.do(http.MethodGet, c.sessionPath(sessionID, "/result"), nil, http.StatusOK, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &res, nil
}

// SetHighlight dispatches h to the session's editor.
func (c *ChecklistClient) SetHighlight(sessionID string, h checklist.Highlight) error {
	if _, err := c.do(http.MethodPost, c.sessionPath(sessionID, "/highlights"), h, http.StatusAccepted, nil); err != nil {
		return fmt.Errorf("failed to set highlight: %w", err)
	}
	return nil
}

// ConsumeHighlight takes the pending highlight, or nil when there is none.
func (c *ChecklistClient) ConsumeHighlight(sessionID string) (*checklist.Highlight, error) {
	var h checklist.Highlight
	found, err := c.do(http.MethodGet, c.sessionPath(sessionID, "/highlights"), nil, http.StatusOK, &h)
	if err != nil {
		return nil, fmt.Errorf("failed to consume highlight: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &h, nil
}

// Help runs a help center action such as "toggle" or "next".
func (c *ChecklistClient) Help(sessionID, action string) (*editor.HelpCenterState, error) {
	var st editor.HelpCenterState
	if _, err := c.do(http.MethodPost, c.sessionPath(sessionID, "/help/"+action), nil, http.StatusOK, &st); err != nil {
		return nil, fmt.Errorf("failed to run help action %s: %w", action, err)
	}
	return &st, nil
}

func (c *ChecklistClient) sessionPath(id, suffix string) string {
	return "/api/checklist/sessions/" + id + suffix
}

// do sends body as JSON and decodes the response into out. It reports false
// without error when the server answers 204.
func (c *ChecklistClient) do(method, path string, body any, want int, out any) (bool, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.baseURL+path, r)
	if err != nil {
		return false, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return false, nil
	}
	if resp.StatusCode != want {
		data, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(data))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return true, nil
}
