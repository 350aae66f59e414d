package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/toyz/axonbase/internal/cli"
	"github.com/toyz/axonbase/internal/utils"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const directoryHelp = `Directory patterns:
  ./...              Scan the current directory and all subdirectories
  ./internal/...     Scan internal and all its subdirectories
  ./api              Scan only the given package directory`

// newRootCmd builds the command tree writing to out and errOut
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "axonbase",
		Short: "Generate not-implemented bases for route-annotated interfaces",
		Long: `axonbase scans Go packages for interfaces whose methods carry route
annotations such as //axon::get /users/{id} and writes an <Interface>Base
type next to each of them. Embedding the base satisfies the interface with
stubs that fail with 501 Not Implemented, including methods inherited from
generic interfaces with their type parameters substituted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().String("config", "", "config file (default ./axonbase.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output and detailed error reporting")
	root.PersistentFlags().BoolP("quiet", "q", false, "only show errors")
	root.PersistentFlags().Bool("dry-run", false, "report what would change without touching files")

	root.AddCommand(newGenerateCmd(), newCleanCmd(), newVersionCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [directories...]",
		Short: "Generate bases for annotated interfaces",
		Long: "Generate <Interface>Base types for the annotated interfaces of the given packages.\n\n" +
			directoryHelp,
		Example: `  axonbase generate ./...
  axonbase generate --kinds get,post ./api
  axonbase generate --snapshot decls.yaml
  axonbase generate --module github.com/acme/app --prune ./internal/...`,
		RunE: runGenerate,
	}
	cmd.Flags().StringSlice("kinds", nil, "route annotation kinds to recognize (default all: get,post,put,delete,patch,exchange)")
	cmd.Flags().String("module", "", "module path for imports (defaults to the go.mod module)")
	cmd.Flags().StringSlice("snapshot", nil, "YAML declaration snapshot to load")
	cmd.Flags().Bool("prune", false, "remove generated bases the round no longer produces")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args)
	if err != nil {
		return report(cmd, err, false)
	}

	diagnostics := newDiagnostics(cmd.OutOrStdout(), s.level())
	diagnostics.Header("generating bases")

	generator := cli.NewGeneratorWithDiagnostics(diagnostics)
	if err := generator.Run(s.config()); err != nil {
		return report(cmd, err, s.Verbose)
	}

	summary := generator.GetSummary()
	if s.DryRun {
		diagnostics.Success("Dry run: %d base(s) would be written", summary.Generated)
	} else if summary.Generated == 0 {
		diagnostics.Success("All bases are up to date")
	} else {
		diagnostics.Success("Wrote %d base(s)", summary.Generated)
	}
	if generator.Issues() != nil {
		diagnostics.Warn("%d issue(s) reported", summary.Issues.Count())
	}
	return nil
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [directories...]",
		Short: "Remove generated bases",
		Long:  "Remove the autogen_*_base.go files from the given directories.\n\n" + directoryHelp,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, args)
			if err != nil {
				return report(cmd, err, false)
			}

			diagnostics := newDiagnostics(cmd.OutOrStdout(), s.level())
			removed, err := cli.NewCleaner().CleanGeneratedFiles(s.Directories, s.DryRun)
			if err != nil {
				return report(cmd, err, s.Verbose)
			}

			for _, file := range removed {
				if s.DryRun {
					diagnostics.List("would remove %s", file)
				} else {
					diagnostics.List("removed %s", file)
				}
			}
			diagnostics.Success("%d generated base(s) cleaned", len(removed))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the axonbase version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "axonbase %s\n", version)
		},
	}
}

// newDiagnostics colors output only when it goes to the terminal
func newDiagnostics(out io.Writer, level utils.DiagnosticLevel) *utils.DiagnosticSystem {
	if out == os.Stdout {
		return utils.NewDiagnosticSystem(level)
	}
	return utils.NewBufferedDiagnostics(level, out)
}

// report prints err with the diagnostic reporter and returns it so the
// command exits non-zero
func report(cmd *cobra.Command, err error, verbose bool) error {
	cli.NewDiagnosticReporterTo(verbose, cmd.ErrOrStderr()).ReportError(err)
	return err
}
