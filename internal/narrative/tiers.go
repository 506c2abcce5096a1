package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/sales-diagnostic/internal/llm"
	"github.com/jonathan/sales-diagnostic/internal/prompts"
	"github.com/jonathan/sales-diagnostic/internal/types"
)

// Tier is one generator in the fallback chain.
type Tier interface {
	Source() types.NarrativeSource
	Generate(ctx context.Context, a types.AnswerRecord) (string, error)
}

var errEmptyNarrative = errors.New("empty narrative")

// DefaultRemoteTimeout bounds a call to the remote analysis endpoint.
const DefaultRemoteTimeout = 30 * time.Second

// RemoteTier posts the answers to a server-side analysis endpoint.
type RemoteTier struct {
	URL        string
	HTTPClient *http.Client
}

// NewRemoteTier returns a remote tier for url, or nil when url is empty.
func NewRemoteTier(url string, timeout time.Duration) *RemoteTier {
	if url == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &RemoteTier{URL: url, HTTPClient: &http.Client{Timeout: timeout}}
}

// Source implements Tier.
func (t *RemoteTier) Source() types.NarrativeSource { return types.NarrativeRemote }

type remoteRequest struct {
	Answers types.AnswerRecord `json:"answers"`
}

type remoteResponse struct {
	Analysis string `json:"analysis"`
	Error    string `json:"error"`
}

// Generate implements Tier.
func (t *RemoteTier) Generate(ctx context.Context, a types.AnswerRecord) (string, error) {
	body, err := json.Marshal(remoteRequest{Answers: a})
	if err != nil {
		return "", fmt.Errorf("failed to encode answers: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := t.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("remote analysis unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read remote analysis: %w", err)
	}

	var out remoteResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &RemoteStatusError{StatusCode: resp.StatusCode, Message: out.Error}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode remote analysis: %w", decodeErr)
	}
	if strings.TrimSpace(out.Analysis) == "" {
		return "", errEmptyNarrative
	}
	return out.Analysis, nil
}

// ModelTier calls the language model directly.
type ModelTier struct {
	Client    llm.Client
	Tier      llm.ModelTier
	PromptKey string
}

// NewModelTier returns a direct model tier, or nil when client is nil.
func NewModelTier(client llm.Client, promptKey string) *ModelTier {
	if client == nil {
		return nil
	}
	if promptKey == "" {
		promptKey = prompts.KeyDirectAnalysis
	}
	return &ModelTier{Client: client, Tier: llm.TierStandard, PromptKey: promptKey}
}

// Source implements Tier.
func (t *ModelTier) Source() types.NarrativeSource { return types.NarrativeDirect }

// Generate implements Tier.
func (t *ModelTier) Generate(ctx context.Context, a types.AnswerRecord) (string, error) {
	prompt, err := BuildPrompt(t.PromptKey, a)
	if err != nil {
		return "", err
	}
	text, err := t.Client.GenerateText(ctx, prompt, t.Tier)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errEmptyNarrative
	}
	return text, nil
}

// StaticTier returns the canned narrative. It only fails if the template is missing.
type StaticTier struct{}

// Source implements Tier.
func (StaticTier) Source() types.NarrativeSource { return types.NarrativeStatic }

// Generate implements Tier.
func (StaticTier) Generate(_ context.Context, a types.AnswerRecord) (string, error) {
	return StaticText(a)
}
