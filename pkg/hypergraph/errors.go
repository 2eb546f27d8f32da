package hypergraph

import "errors"

// ErrNotImplemented marks content-aware operations that the plain structural
// graph declares but leaves to a modality specialization. Callers hitting it
// are using the base graph where a concrete specialization (e.g. TextGraph)
// is required.
var ErrNotImplemented = errors.New("not implemented by this specialization")

// NotFoundError is returned when a node identifier has no entry in the
// graph's node mapping.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return "node not found"
	}

	return "node not found: " + e.ID
}
