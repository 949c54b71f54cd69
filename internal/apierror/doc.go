// Package apierror provides error inspection for DoltHub API errors.
// It centralizes the logic for identifying the failure classes the
// GraphQL API reports, eliminating the need for string-based error
// checking throughout the codebase.
package apierror
