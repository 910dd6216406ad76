// Package logging wraps log/slog with the attribute helpers, handlers, and
// standardized field names used across curator.
//
// Components receive a *slog.Logger tagged with a component attribute and
// enrich it per file via WithContext, which pulls the correlation ID and
// stage name out of the request context. Console output is rendered by a
// pretty handler when attached to a terminal; the json format emits one
// object per line for log shippers.
package logging
