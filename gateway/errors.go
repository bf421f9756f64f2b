package gateway

import "errors"

// ErrUnsupportedScopeType is the error an application is expected to
// return (or raise, in a panic, which is also recognized) for a scope
// type it does not handle. The supervisor treats a lifespan scope
// rejected this way as "lifespan not supported" and continues without
// running lifespan handlers, per the core contract.
var ErrUnsupportedScopeType = errors.New("unsupported scope type")

// ErrUnknownEventKind is returned by Send when the application pushes
// an event whose Kind is not one of the closed set this package
// defines. The event vocabulary is closed by design (spec §4.1); an
// unrecognized kind is a protocol violation, not an extension point.
var ErrUnknownEventKind = errors.New("gateway: unknown event kind")

// ErrSequenceViolation is returned when an event is well-formed but
// arrives out of the order its scope type requires — e.g. a
// http.response.body before any http.response.start.
var ErrSequenceViolation = errors.New("gateway: event sequence violation")
