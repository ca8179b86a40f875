package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/hiring-radar/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate JSON files against a built-in or custom schema",
	Long: `Validates each file against --schema, which names a built-in schema (listings, companies, report) or a path to
a JSON Schema file. Exits non-zero when any file is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var validateSchema string

var builtinSchemas = map[string]string{
	"listings":  schemas.Listings,
	"companies": schemas.Companies,
	"report":    schemas.Report,
}

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Schema: listings, companies, report or a schema file path (required)")

	if err := validateCmd.MarkFlagRequired("schema"); err != nil {
		panic(fmt.Sprintf("failed to mark schema flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	validateFile := func(path string) error {
		if name, ok := builtinSchemas[validateSchema]; ok {
			return schemas.ValidateFile(name, path)
		}
		return schemas.ValidateJSON(validateSchema, path)
	}

	failed := 0
	for _, path := range args {
		err := validateFile(path)
		if err == nil {
			_, _ = fmt.Fprintf(os.Stdout, "%s: valid\n", path)
			continue
		}

		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &schemaLoadErr) {
			return err
		}
		failed++
		_, _ = fmt.Fprintf(os.Stdout, "%s: %v\n", path, err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
	}
	return nil
}
