package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/probelab/uiharness/internal/config"
	"github.com/probelab/uiharness/internal/obs"
)

const trelloBaseURL = "https://api.trello.com/1"

// TrelloReporter files failures as cards on a Trello list.
type TrelloReporter struct {
	cfg     config.TrelloConfig
	baseURL string
	client  *http.Client
}

// NewTrello creates a Trello reporter from the run configuration.
func NewTrello(cfg config.TrelloConfig) *TrelloReporter {
	return &TrelloReporter{
		cfg:     cfg,
		baseURL: trelloBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Report creates a card on the configured failure list and returns its id.
func (t *TrelloReporter) Report(ctx context.Context, f Failure) (string, error) {
	form := url.Values{
		"key":    {t.cfg.APIKey},
		"token":  {t.cfg.APIToken},
		"idList": {t.cfg.FailListID},
		"name":   {f.Summary()},
		"desc":   {f.Description()},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.baseURL+"/cards", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("trello: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("trello: create card: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("trello: create card: status %d: %s", resp.StatusCode, body)
	}

	var card struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return "", fmt.Errorf("trello: decode card response: %w", err)
	}
	obs.From(ctx).Info("trello card filed", "card_id", card.ID, "summary", f.Summary())
	return card.ID, nil
}

// MoveToDone moves a previously filed card to the configured done list,
// for marking a flake as resolved from a later green run.
func (t *TrelloReporter) MoveToDone(ctx context.Context, cardID string) error {
	if t.cfg.DoneListID == "" {
		return fmt.Errorf("trello: no done list configured")
	}
	form := url.Values{
		"key":    {t.cfg.APIKey},
		"token":  {t.cfg.APIToken},
		"idList": {t.cfg.DoneListID},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		t.baseURL+"/cards/"+cardID, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("trello: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("trello: move card: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("trello: move card: status %d: %s", resp.StatusCode, body)
	}
	return nil
}
