package main

// Exit codes
const (
	ExitSuccess          = 0 // Success
	ExitError            = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError      = 2 // Configuration error (unreadable config, bad override)
	ExitStoreUnavailable = 3 // Database could not be opened or reached
	ExitCommandFailed    = 4 // At least one tracker command failed (exec, import)
)
