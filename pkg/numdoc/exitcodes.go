package numdoc

// Process exit codes.
const (
	// ExitSuccess means every attempted example passed.
	ExitSuccess = 0
	// ExitFailure means at least one example failed.
	ExitFailure = 1
	// ExitConfigError means the configuration or arguments were invalid.
	ExitConfigError = 2
	// ExitEnvError means the environment prevented the run.
	ExitEnvError = 3
)
