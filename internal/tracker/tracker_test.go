package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelab/uiharness/internal/config"
)

func sampleFailure() Failure {
	return Failure{
		TestName:    "TestLoginInvalidPassword",
		Environment: "qa",
		Message:     "flash message was \"welcome\", expected \"invalid credentials\"",
		OccurredAt:  time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestFailureSummaryAndDescription(t *testing.T) {
	f := sampleFailure()
	assert.Equal(t, "[qa] TestLoginInvalidPassword failed", f.Summary())
	desc := f.Description()
	assert.Contains(t, desc, "Test: TestLoginInvalidPassword")
	assert.Contains(t, desc, "2026-03-14T10:30:00Z")
	assert.Contains(t, desc, "invalid credentials")
}

func TestTrelloReportCreatesCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/cards", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-key", r.Form.Get("key"))
		assert.Equal(t, "list-fail", r.Form.Get("idList"))
		assert.Equal(t, "[qa] TestLoginInvalidPassword failed", r.Form.Get("name"))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "card-42"})
	}))
	defer srv.Close()

	reporter := NewTrello(config.TrelloConfig{
		APIKey:     "test-key",
		APIToken:   "test-token",
		FailListID: "list-fail",
	})
	reporter.baseURL = srv.URL

	id, err := reporter.Report(context.Background(), sampleFailure())
	require.NoError(t, err)
	assert.Equal(t, "card-42", id)
}

func TestTrelloReportSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	reporter := NewTrello(config.TrelloConfig{APIKey: "k", APIToken: "bad"})
	reporter.baseURL = srv.URL

	_, err := reporter.Report(context.Background(), sampleFailure())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestJiraReportCreatesIssue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/2/issue", r.URL.Path)
		user, token, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "qa@example.com", user)
		assert.Equal(t, "api-token", token)

		var req jiraIssueRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "QA", req.Fields.Project.Key)
		assert.Equal(t, "Bug", req.Fields.IssueType.Name)
		assert.Contains(t, req.Fields.Labels, "automated-test")

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"key": "QA-17"})
	}))
	defer srv.Close()

	reporter := NewJira(config.JiraConfig{
		BaseURL:    srv.URL,
		User:       "qa@example.com",
		APIToken:   "api-token",
		ProjectKey: "QA",
		IssueType:  "Bug",
	})

	key, err := reporter.Report(context.Background(), sampleFailure())
	require.NoError(t, err)
	assert.Equal(t, "QA-17", key)
}

func TestFromConfigBuildsEnabledReporters(t *testing.T) {
	assert.Nil(t, FromConfig(&config.Config{}))

	reporters := FromConfig(&config.Config{
		Trello: config.TrelloConfig{Enabled: true},
		Jira:   config.JiraConfig{Enabled: true},
	})
	require.Len(t, reporters, 2)
	assert.IsType(t, &TrelloReporter{}, reporters[0])
	assert.IsType(t, &JiraReporter{}, reporters[1])
}

func TestMockReporterCaptures(t *testing.T) {
	var m MockReporter
	id, err := m.Report(context.Background(), sampleFailure())
	require.NoError(t, err)
	assert.Equal(t, "mock-1", id)
	assert.Equal(t, 1, m.Count())
}
