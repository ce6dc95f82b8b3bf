package searcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"reversi/game"
)

// EvaluateRequest is the wire form of an Evaluator call.
type EvaluateRequest struct {
	Player int8             `json:"player"`
	Board  [game.Cells]int8 `json:"board"`
	Config Config           `json:"config"`
}

type EvaluateResponse struct {
	Index int `json:"index"`
}

// Remote is an Evaluator served over HTTP by another process.
type Remote struct {
	url    string
	client *http.Client
}

func NewRemote(url string, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{url: url, client: client}
}

func (r *Remote) Choose(ctx context.Context, player int8, board [game.Cells]int8, cfg Config) (int, error) {
	payload, err := json.Marshal(EvaluateRequest{Player: player, Board: board, Config: cfg})
	if err != nil {
		return -1, fmt.Errorf("encode evaluate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return -1, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return -1, fmt.Errorf("remote evaluator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return -1, fmt.Errorf("remote evaluator: %s: %s", resp.Status, bytes.TrimSpace(body))
	}
	var out EvaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return -1, fmt.Errorf("decode evaluate response: %w", err)
	}
	return out.Index, nil
}
