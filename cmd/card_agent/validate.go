package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nextlevelcleaning/cards/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate [profile.json ...]",
	Short: "Validate profile documents against the profile schema",
	Long: `Validates profile documents strictly: missing name or role, content items without their
required fields and unknown content types are all reported. Without arguments every
data/*.json document in the site directory is checked.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		files, err = filepath.Glob(filepath.Join(cfg.SiteDir, "data", "*.json"))
		if err != nil {
			return fmt.Errorf("failed to list profile documents: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no profile documents found in %s", filepath.Join(cfg.SiteDir, "data"))
		}
	}

	p := printer(cmd)
	invalid := 0
	for _, f := range files {
		err := schemas.ValidateProfileFile(f)
		if err != nil {
			invalid++
		}
		p.PrintValidation(f, err)
	}

	if invalid > 0 {
		return fmt.Errorf("validation failed: %d of %d documents invalid", invalid, len(files))
	}
	//nolint:errcheck // writing to stdout; errors are not recoverable
	fmt.Fprintf(out(cmd), "Validation passed: %d documents\n", len(files))
	return nil
}
