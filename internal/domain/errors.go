package domain

import "errors"

// Error kinds surfaced to tool callers. Use errors.Is to classify.
var (
	// ErrTargetNotFound indicates a path expression matched no node.
	ErrTargetNotFound = errors.New("target not found")

	// ErrAmbiguousTarget indicates a path expression matched more than one node.
	ErrAmbiguousTarget = errors.New("ambiguous target")

	// ErrTargetNotRangeable indicates the target lacks a start or end index.
	ErrTargetNotRangeable = errors.New("target has no index range")

	// ErrMissingPayload indicates an operation lacks its style or content.
	ErrMissingPayload = errors.New("missing required payload")

	// ErrInvalidDocumentReference indicates an unparsable document ID or URL.
	ErrInvalidDocumentReference = errors.New("invalid document reference")

	// ErrUpstream indicates the document service rejected a request.
	ErrUpstream = errors.New("document service error")

	// ErrUnknownOperation indicates an unrecognized intent or content tag.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidPath indicates a path expression that cannot be parsed.
	ErrInvalidPath = errors.New("invalid path expression")

	// ErrMalformedSnapshot indicates sibling index ranges that do not abut,
	// so no index can be predicted from the snapshot.
	ErrMalformedSnapshot = errors.New("malformed document snapshot")
)
