// Package dictionary implements the dictionaryapi.dev collaborator.
package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const baseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// Definition is the first definition returned for a word.
type Definition struct {
	Word         string
	PartOfSpeech string
	Meaning      string
}

// Client looks up English word definitions.
type Client struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a dictionary client with the given request timeout.
func NewClient(timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "dictionary_client"),
	}
}

type dictEntry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Define fetches the first definition of word. A 404 from the service is
// reported as a plain error so the handler can render a "not found" text.
func (c *Client) Define(ctx context.Context, word string) (Definition, error) {
	endpoint := fmt.Sprintf("%s/%s", baseURL, url.PathEscape(word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to build dictionary request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Definition{}, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.DebugContext(ctx, "Dictionary lookup failed", "word", word, "status", resp.StatusCode)
		return Definition{}, fmt.Errorf("no definition found for %q", word)
	}

	var entries []dictEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return Definition{}, fmt.Errorf("failed to decode dictionary response: %w", err)
	}
	if len(entries) == 0 || len(entries[0].Meanings) == 0 || len(entries[0].Meanings[0].Definitions) == 0 {
		return Definition{}, fmt.Errorf("no definition found for %q", word)
	}

	meaning := entries[0].Meanings[0]
	return Definition{
		Word:         entries[0].Word,
		PartOfSpeech: meaning.PartOfSpeech,
		Meaning:      meaning.Definitions[0].Definition,
	}, nil
}
