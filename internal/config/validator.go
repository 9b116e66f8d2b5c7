package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredPostgresEnvVars lists the variables that must be set when STORAGE=postgres
var RequiredPostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// ValidateEnv checks the schema version and, for the postgres backend,
// that every database variable is set
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	if !strings.EqualFold(os.Getenv("STORAGE"), StoragePostgres) {
		return nil
	}

	var missing []string
	for _, envVar := range RequiredPostgresEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if os.Getenv("TIMEZONE") == "" {
		warnings = append(warnings, "TIMEZONE is not set - daily totals use the server's local calendar day")
	}

	if strings.EqualFold(os.Getenv("STORAGE"), StorageSQLite) && os.Getenv("SQLITE_PATH") == "" {
		warnings = append(warnings, "SQLITE_PATH is not set - data is written to "+DefaultSQLitePath+" in the working directory")
	}

	if os.Getenv("API_KEY") == "" {
		warnings = append(warnings, "API_KEY is not set - the API accepts unauthenticated requests")
	}

	return warnings, nil
}
