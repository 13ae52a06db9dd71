package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aabhimanyuDataEngineer/csr-tmf-portal/internal/audit"
)

// envKeys is the set of environment variables shown by `portalctl env`,
// in display order. Secret values are sanitised to set/unset by the audit
// package — the raw value never reaches the terminal.
var envKeys = []string{
	"ENVIRONMENT",
	"AI_PROVIDER",
	"SEARCH_PROVIDER",
	"VECTOR_PROVIDER",
	"BEDROCK_REGION",
	"BEDROCK_CLAUDE_MODEL",
	"BEDROCK_TITAN_MODEL",
	"DATABRICKS_WORKSPACE_URL",
	"DATABRICKS_TOKEN",
	"DATABRICKS_CLUSTER_ID",
	"DATABRICKS_MODEL_ENDPOINT",
	"DATABRICKS_VECTOR_ENDPOINT",
	"OPENSEARCH_ENDPOINT",
	"OPENSEARCH_REGION",
	"OPENSEARCH_INDEX",
	"S3_BUCKET_NAME",
	"S3_REGION",
	"DELTA_CATALOG",
	"DELTA_SCHEMA",
	"REDIS_HOST",
	"REDIS_PORT",
	"REDIS_PASSWORD",
	"SECRET_KEY",
	"LOG_LEVEL",
	"LOG_FORMAT",
}

// NewEnvCmd constructs the `portalctl env` command, which prints the
// provider-relevant environment with secrets redacted.
func NewEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the provider environment with secrets redacted",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, key := range envKeys {
				fmt.Fprintf(out, "%-28s %s\n", key, audit.SanitiseKey(key, os.Getenv(key)))
			}
		},
	}
}
