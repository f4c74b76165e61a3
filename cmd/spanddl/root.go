package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-extras/cobraflags"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spanner-tools/spanddl"
	"github.com/spanner-tools/spanddl/internal/textdiff"
	"github.com/spanner-tools/spanddl/parser"
)

const (
	originalDdlFileFlag          = "original-ddl-file"
	newDdlFileFlag               = "new-ddl-file"
	outputDdlFileFlag            = "output-ddl-file"
	allowDropStatementsFlag      = "allow-drop-statements"
	allowRecreateIndexesFlag     = "allow-recreate-indexes"
	allowRecreateConstraintsFlag = "allow-recreate-constraints"
	verboseFlag                  = "verbose"
)

var rootFlags = map[string]cobraflags.Flag{
	originalDdlFileFlag: &cobraflags.StringFlag{
		Name:  originalDdlFileFlag,
		Value: "",
		Usage: "Path to the DDL file describing the original schema (required)",
	},
	newDdlFileFlag: &cobraflags.StringFlag{
		Name:  newDdlFileFlag,
		Value: "",
		Usage: "Path to the DDL file describing the desired schema (required)",
	},
	outputDdlFileFlag: &cobraflags.StringFlag{
		Name:  outputDdlFileFlag,
		Value: "",
		Usage: "Path to write the generated migration script. Defaults to stdout",
	},
	allowDropStatementsFlag: &cobraflags.BoolFlag{
		Name:  allowDropStatementsFlag,
		Value: false,
		Usage: "Permit DROP TABLE / DROP INDEX / DROP CHANGE STREAM / DROP COLUMN for removed objects",
	},
	allowRecreateIndexesFlag: &cobraflags.BoolFlag{
		Name:  allowRecreateIndexesFlag,
		Value: false,
		Usage: "Permit DROP INDEX + CREATE INDEX pairs for modified indexes",
	},
	allowRecreateConstraintsFlag: &cobraflags.BoolFlag{
		Name:  allowRecreateConstraintsFlag,
		Value: false,
		Usage: "Permit DROP CONSTRAINT + ADD CONSTRAINT pairs for modified constraints",
	},
	verboseFlag: &cobraflags.BoolFlag{
		Name:  verboseFlag,
		Value: false,
		Usage: "Print a unified diff of the two input DDL files before the statement plan",
	},
}

var rootCmd = &cobra.Command{
	Use:   "spanddl",
	Short: "Compute an ordered migration script between two Cloud Spanner DDL schemas",
	RunE:  runRoot,
}

func NewRootCommand() *cobra.Command {
	cobraflags.RegisterMap(rootCmd, rootFlags)
	return rootCmd
}

func runRoot(cmd *cobra.Command, _ []string) error {
	originalPath := rootFlags[originalDdlFileFlag].GetString()
	newPath := rootFlags[newDdlFileFlag].GetString()
	outputPath := rootFlags[outputDdlFileFlag].GetString()

	if originalPath == "" || newPath == "" {
		return fmt.Errorf("--%s and --%s are required", originalDdlFileFlag, newDdlFileFlag)
	}

	originalText, err := readFileOrEmpty(originalPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", originalPath, err)
	}
	newText, err := readFileOrEmpty(newPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", newPath, err)
	}

	if rootFlags[verboseFlag].GetBool() {
		d, err := textdiff.Unified(originalPath, newPath, originalText, newText)
		if err != nil {
			return fmt.Errorf("computing input diff: %w", err)
		}
		if d != "" {
			fmt.Fprint(cmd.OutOrStdout(), d)
		}
	}

	log.WithFields(log.Fields{"original": originalPath, "new": newPath}).Debug("parsing input DDL")

	originalStmts, err := parser.Parse(originalPath, originalText)
	if err != nil {
		return err
	}
	newStmts, err := parser.Parse(newPath, newText)
	if err != nil {
		return err
	}

	originalSchema, err := spanddl.Extract(originalStmts)
	if err != nil {
		return err
	}
	newSchema, err := spanddl.Extract(newStmts)
	if err != nil {
		return err
	}

	policy := spanddl.Policy{
		AllowDropStatements:      rootFlags[allowDropStatementsFlag].GetBool(),
		AllowRecreateIndexes:     rootFlags[allowRecreateIndexesFlag].GetBool(),
		AllowRecreateConstraints: rootFlags[allowRecreateConstraintsFlag].GetBool(),
	}

	stmts, err := spanddl.Generate(originalSchema, newSchema, policy)
	if err != nil {
		return err
	}

	log.WithField("statement_count", len(stmts)).Info("migration plan generated")

	var out strings.Builder
	for _, stmt := range stmts {
		out.WriteString(stmt)
		out.WriteString(";\n\n")
	}

	if outputPath == "" {
		fmt.Fprint(cmd.OutOrStdout(), out.String())
		return nil
	}
	return os.WriteFile(outputPath, []byte(out.String()), 0o644)
}

func readFileOrEmpty(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
