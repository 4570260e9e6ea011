package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pomoplan/internal/repository"
)

// ErrorBody is the structured failure shape returned by the sync endpoint.
type ErrorBody struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// Client is the device-side half of the protocol: it queues mutations with
// client-assigned ids, pushes them to the server, and reconciles its local
// replica from pull patches.
type Client struct {
	clientID string
	endpoint string
	http     *http.Client
	store    *repository.MemoryStore

	nextID  int
	pending []Mutation
	cookie  int
}

// NewClient creates a sync client for the given server endpoint. The store
// holds the local replica that Pull reconciles.
func NewClient(endpoint, clientID string, store *repository.MemoryStore) *Client {
	return &Client{
		clientID: clientID,
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		store:    store,
		nextID:   1,
	}
}

// Store returns the local replica.
func (c *Client) Store() *repository.MemoryStore {
	return c.store
}

// Cookie returns the version cookie from the most recent pull.
func (c *Client) Cookie() int {
	return c.cookie
}

// Pending returns the number of queued, unacknowledged mutations.
func (c *Client) Pending() int {
	return len(c.pending)
}

// Enqueue records a mutation locally with the next sequence id. Args must be
// JSON-marshalable.
func (c *Client) Enqueue(name string, args any) error {
	var raw json.RawMessage
	if args != nil {
		buf, err := json.Marshal(args)
		if err != nil {
			return fmt.Errorf("encoding args for %s: %w", name, err)
		}
		raw = buf
	}
	c.pending = append(c.pending, Mutation{ID: c.nextID, Name: name, Args: raw})
	c.nextID++
	return nil
}

// Push sends all pending mutations. Acknowledged mutations are dropped from
// the queue; on a sequence gap the queue is trimmed to the server's
// acknowledged position and the remainder is resent once.
func (c *Client) Push(ctx context.Context) error {
	if len(c.pending) == 0 {
		return nil
	}
	if err := c.pushOnce(ctx); err != nil {
		var gap *SequenceGapError
		if !errors.As(err, &gap) {
			return err
		}
		// Resend from lastMutationID + 1.
		return c.pushOnce(ctx)
	}
	return nil
}

func (c *Client) pushOnce(ctx context.Context) error {
	body := map[string]any{"push": PushRequest{ClientID: c.clientID, Mutations: c.pending}}
	raw, status, err := c.post(ctx, body)
	if err != nil {
		return err
	}

	if status == http.StatusOK {
		var resp PushResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return fmt.Errorf("decoding push response: %w", err)
		}
		c.ack(resp.LastMutationID)
		return nil
	}

	var fail ErrorBody
	if err := json.Unmarshal(raw, &fail); err != nil {
		return fmt.Errorf("push failed with status %d", status)
	}
	if fail.Code == CodeSequenceGap {
		last := intDetail(fail.Details, "lastMutationID")
		c.ack(last)
		return &SequenceGapError{ClientID: c.clientID, LastMutationID: last}
	}
	return fmt.Errorf("push rejected: %s", fail.Error)
}

// Pull fetches the full record set and replaces the local replica with it.
func (c *Client) Pull(ctx context.Context) error {
	body := map[string]any{"pull": PullRequest{ClientID: c.clientID}}
	raw, status, err := c.post(ctx, body)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		var fail ErrorBody
		if err := json.Unmarshal(raw, &fail); err != nil {
			return fmt.Errorf("pull failed with status %d", status)
		}
		return fmt.Errorf("pull rejected: %s", fail.Error)
	}

	var resp PullResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("decoding pull response: %w", err)
	}

	records := make([]repository.Record, 0, len(resp.Patch))
	for _, op := range resp.Patch {
		if op.Op != "put" {
			continue
		}
		records = append(records, repository.Record{Key: op.Key, Value: op.Value})
	}
	c.store.Replace(records)
	c.cookie = resp.Cookie
	return nil
}

// ack drops pending mutations the server has acknowledged.
func (c *Client) ack(lastMutationID int) {
	kept := c.pending[:0]
	for _, m := range c.pending {
		if m.ID > lastMutationID {
			kept = append(kept, m)
		}
	}
	c.pending = kept
}

func (c *Client) post(ctx context.Context, body any) (json.RawMessage, int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("encoding sync request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("building sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("calling sync endpoint: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading sync response: %w", err)
	}
	return raw, resp.StatusCode, nil
}

func intDetail(details map[string]any, key string) int {
	if details == nil {
		return 0
	}
	if v, ok := details[key].(float64); ok {
		return int(v)
	}
	return 0
}
