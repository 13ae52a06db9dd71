// Command portalctl is the operator CLI for the clinical-document portal's
// configuration layer. It resolves and validates the deployment
// configuration (provider selectors, backend sub-configs) without touching
// any backend, so misconfigured deployments are caught before rollout.
package main

import (
	"fmt"
	"os"

	"github.com/aabhimanyuDataEngineer/csr-tmf-portal/cmd/portalctl/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
