package indexes

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Status classifies the result of one index-creation attempt.
type Status string

const (
	// StatusInitiated: the Admin API accepted the request and returned a
	// long-running operation. Creation itself is asynchronous; the
	// provisioner does not poll it to completion.
	StatusInitiated Status = "Initiated"
	// StatusExists: the index already exists. A normal outcome on
	// re-runs, not a failure.
	StatusExists Status = "Exists"
	// StatusSkipped: the definition was structurally unusable.
	StatusSkipped Status = "Skipped"
	// StatusError: the Admin API rejected the request or the call failed.
	StatusError Status = "Error"
)

// Outcome is the per-definition result of a provisioning run.
type Outcome struct {
	Index  string `json:"index"`
	Status Status `json:"status"`
	Detail string `json:"detail"`
}

// OperationHandle identifies the long-running operation the Admin API
// starts for an accepted index-creation request.
type OperationHandle struct {
	Name string `json:"name"`
}

// RemoteIndexAPI is the Admin API surface the provisioner depends on.
type RemoteIndexAPI interface {
	CreateIndex(ctx context.Context, collectionGroup string, payload Payload) (*OperationHandle, error)
}

// Provision submits each definition to the Admin API in input order and
// collects a per-item outcome. A single bad definition or failed call
// never aborts the batch. The second return value reports whether any
// outcome was Skipped or Error, so callers can distinguish "completed"
// from "completed with errors".
//
// Definitions are re-checked structurally even though the validator
// should have run first: the provisioner may be invoked without prior
// validation.
func Provision(ctx context.Context, defs []Definition, client RemoteIndexAPI) ([]Outcome, bool) {
	outcomes := make([]Outcome, 0, len(defs))
	hasErrors := false

	for _, def := range defs {
		if def.CollectionGroup == "" {
			outcomes = append(outcomes, Outcome{
				Index:  "Unknown",
				Status: StatusSkipped,
				Detail: "missing 'collectionGroup' in definition",
			})
			hasErrors = true
			continue
		}

		payload := def.BuildPayload()
		if len(payload.Fields) == 0 {
			outcomes = append(outcomes, Outcome{
				Index:  def.CollectionGroup,
				Status: StatusSkipped,
				Detail: "no valid 'fields' defined for index",
			})
			hasErrors = true
			continue
		}

		label := payload.Label(def.CollectionGroup)
		outcome := submitOne(ctx, client, def.CollectionGroup, payload, label)
		if outcome.Status == StatusError {
			hasErrors = true
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, hasErrors
}

// submitOne performs a single creation call and classifies the result.
// Any error from the client is downgraded to an Outcome so the batch
// keeps going.
func submitOne(ctx context.Context, client RemoteIndexAPI, collectionGroup string, payload Payload, label string) Outcome {
	log.Printf("INFO: Attempting to create index: %s", label)

	op, err := client.CreateIndex(ctx, collectionGroup, payload)
	if err == nil {
		opName := ""
		if op != nil {
			opName = op.Name
		}
		log.Printf("INFO: Index creation operation started for %s: %s", label, opName)
		return Outcome{
			Index:  label,
			Status: StatusInitiated,
			Detail: fmt.Sprintf("Operation: %s", opName),
		}
	}

	var apiErr *RemoteAPIError
	if errors.As(err, &apiErr) {
		if apiErr.Conflict() {
			log.Printf("INFO: Index already exists: %s", label)
			return Outcome{Index: label, Status: StatusExists, Detail: "Index already exists."}
		}
		log.Printf("ERROR: API error creating index %s: %v", label, apiErr)
		return Outcome{Index: label, Status: StatusError, Detail: apiErr.BestMessage()}
	}

	log.Printf("ERROR: Unexpected error creating index %s: %v", label, err)
	return Outcome{Index: label, Status: StatusError, Detail: fmt.Sprintf("unexpected error: %v", err)}
}
