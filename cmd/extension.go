package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/costbasis"
)

// Environment variables read for the ledger flags defaults (see config).
// EnvPrecision is set for extensions.
const (
	EnvFillsFile = "CBG_FILLS_FILE"
	EnvToken     = "CBG_TOKEN"
	EnvWorkers   = "CBG_WORKERS"
	EnvPrecision = "CBG_PRECISION"
)

// RunExtension attempts to find and execute an external cbg-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "cbg-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), EnvPrecision+"="+strconv.Itoa(int(costbasis.DefaultPrecision.Digits)))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
