package sync

import (
	"encoding/json"
	"fmt"

	"pomoplan/internal/domain"
)

// Mutation names understood by the engine.
const (
	MutationSaveSession         = "saveSession"
	MutationDeleteSession       = "deleteSession"
	MutationClearAllSessions    = "clearAllSessions"
	MutationUpdateTimeBoxStatus = "updateTimeBoxStatus"
	MutationUpdateTaskStatus    = "updateTaskStatus"
	MutationSaveTimerState      = "saveTimerState"
)

// Mutation is one client-ordered state change. IDs are client-assigned,
// strictly increasing starting at 1.
type Mutation struct {
	ID   int             `json:"id"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

// SessionArgs carries the arguments for session mutations. Session is kept
// raw so the server stores exactly what the client sent.
type SessionArgs struct {
	Date    string          `json:"date"`
	Session json.RawMessage `json:"session,omitempty"`
}

// PushRequest is an ordered batch of mutations from one client.
type PushRequest struct {
	ClientID  string     `json:"clientID"`
	Mutations []Mutation `json:"mutations"`
}

// PushResponse acknowledges the client's resulting sequence position.
type PushResponse struct {
	LastMutationID int `json:"lastMutationID"`
}

// PullRequest asks for the full current record set.
type PullRequest struct {
	ClientID string `json:"clientID"`
}

// PatchOp is one reconciliation step in a pull response.
type PatchOp struct {
	Op    string          `json:"op"`
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value,omitempty"`
}

// PullResponse carries the full-state patch plus the client's sequence
// position and the version cookie current at pull time.
type PullResponse struct {
	LastMutationID int       `json:"lastMutationID"`
	Cookie         int       `json:"cookie"`
	Patch          []PatchOp `json:"patch"`
}

// Request is a decoded sync envelope: exactly one of Push or Pull is set.
type Request struct {
	Push *PushRequest
	Pull *PullRequest
}

type envelope struct {
	Method    string       `json:"method"`
	ClientID  string       `json:"clientID"`
	Mutations []Mutation   `json:"mutations"`
	Push      *PushRequest `json:"push"`
	Pull      *PullRequest `json:"pull"`
}

// DecodeRequest accepts both envelope shapes clients send:
// {method:"push", clientID, mutations} and {push:{clientID, mutations}},
// likewise for pull.
func DecodeRequest(raw []byte) (*Request, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON envelope", ErrValidation)
	}

	switch {
	case env.Push != nil:
		return &Request{Push: env.Push}, nil
	case env.Pull != nil:
		return &Request{Pull: env.Pull}, nil
	case env.Method == "push":
		return &Request{Push: &PushRequest{ClientID: env.ClientID, Mutations: env.Mutations}}, nil
	case env.Method == "pull":
		return &Request{Pull: &PullRequest{ClientID: env.ClientID}}, nil
	default:
		return nil, fmt.Errorf("%w: unknown method %q", ErrValidation, env.Method)
	}
}

// validatePush checks envelope-level requirements before anything mutates.
func validatePush(req *PushRequest) error {
	if req.ClientID == "" {
		return fmt.Errorf("%w: missing clientID", ErrValidation)
	}
	for i, m := range req.Mutations {
		if m.ID < 1 {
			return fmt.Errorf("%w: mutation %d has invalid id %d", ErrValidation, i, m.ID)
		}
		if m.Name == "" {
			return fmt.Errorf("%w: mutation %d has no name", ErrValidation, m.ID)
		}
	}
	return nil
}

func validatePull(req *PullRequest) error {
	if req.ClientID == "" {
		return fmt.Errorf("%w: missing clientID", ErrValidation)
	}
	return nil
}

// decodeSessionArgs parses and validates the date-keyed mutation arguments.
func decodeSessionArgs(m Mutation) (*SessionArgs, error) {
	var args SessionArgs
	if err := json.Unmarshal(m.Args, &args); err != nil {
		return nil, fmt.Errorf("%w: mutation %d (%s) has malformed args", ErrValidation, m.ID, m.Name)
	}
	if !domain.ValidDate(args.Date) {
		return nil, fmt.Errorf("%w: mutation %d (%s) has invalid date %q", ErrValidation, m.ID, m.Name, args.Date)
	}
	return &args, nil
}
