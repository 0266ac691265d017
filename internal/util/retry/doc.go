// Package retry provides exponential backoff for operations that poll
// external state, such as waiting for a container to report running.
package retry
