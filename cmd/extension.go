package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Environment passed to extensions, with the same names the configuration reads.
const (
	EnvStore     = "CLUB_STORE"
	EnvStorePath = "CLUB_STORE_PATH"
	EnvLogLevel  = "CLUB_LOG_LEVEL"
)

// RunExtension attempts to find and execute an external club-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	lp, err := exec.LookPath("club-" + subcommand)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	// global flags are passed as environment variables
	cmd.Env = os.Environ()
	if *storeKind != "" {
		cmd.Env = append(cmd.Env, EnvStore+"="+*storeKind)
	}
	if *storePath != "" {
		cmd.Env = append(cmd.Env, EnvStorePath+"="+*storePath)
	}
	if *logLevel != "" {
		cmd.Env = append(cmd.Env, EnvLogLevel+"="+*logLevel)
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", lp, err)
		return true, 1
	}
	return true, 0
}
