package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	writeError(os.Stdout, os.Stderr, fmt.Sprintf(format, args...))
	os.Exit(code)
}

// writeError writes msg as an "error:" line on stderr in human mode,
// or as an ErrorResponse on stdout otherwise.
func writeError(stdout, stderr io.Writer, msg string) {
	if humanOutput {
		fmt.Fprintf(stderr, "error: %s\n", msg)
		return
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.Encode(ErrorResponse{Error: msg})
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status   string `json:"status"`
	Driver   string `json:"driver,omitempty"`
	Database string `json:"database,omitempty"`
	Path     string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
