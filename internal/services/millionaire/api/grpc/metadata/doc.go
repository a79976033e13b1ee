// Package metadata defines the gRPC headers the millionaire service reads.
//
// Callers identify the player with UserIDHeader and may request localized
// error messages with LocaleHeader. Every call gets a request ID, taken from
// RequestIDHeader when present, echoed back in the response headers.
package metadata
