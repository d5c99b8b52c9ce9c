package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/probelab/uiharness/internal/config"
	"github.com/probelab/uiharness/internal/obs"
)

// JiraReporter files failures as issues in a Jira project using the v2 REST
// API with basic auth (user + API token).
type JiraReporter struct {
	cfg    config.JiraConfig
	client *http.Client
}

// NewJira creates a Jira reporter from the run configuration.
func NewJira(cfg config.JiraConfig) *JiraReporter {
	return &JiraReporter{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type jiraIssueRequest struct {
	Fields jiraFields `json:"fields"`
}

type jiraFields struct {
	Project     jiraProject   `json:"project"`
	Summary     string        `json:"summary"`
	Description string        `json:"description"`
	IssueType   jiraIssueType `json:"issuetype"`
	Labels      []string      `json:"labels,omitempty"`
}

type jiraProject struct {
	Key string `json:"key"`
}

type jiraIssueType struct {
	Name string `json:"name"`
}

// Report creates an issue and returns its key (e.g. "QA-123").
func (j *JiraReporter) Report(ctx context.Context, f Failure) (string, error) {
	payload, err := json.Marshal(jiraIssueRequest{
		Fields: jiraFields{
			Project:     jiraProject{Key: j.cfg.ProjectKey},
			Summary:     f.Summary(),
			Description: f.Description(),
			IssueType:   jiraIssueType{Name: j.cfg.IssueType},
			Labels:      []string{"automated-test", f.Environment},
		},
	})
	if err != nil {
		return "", fmt.Errorf("jira: encode issue: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		j.cfg.BaseURL+"/rest/api/2/issue", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("jira: build request: %w", err)
	}
	req.SetBasicAuth(j.cfg.User, j.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("jira: create issue: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("jira: create issue: status %d: %s", resp.StatusCode, body)
	}

	var issue struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return "", fmt.Errorf("jira: decode issue response: %w", err)
	}
	obs.From(ctx).Info("jira issue filed", "issue_key", issue.Key, "summary", f.Summary())
	return issue.Key, nil
}
