package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
func Run(out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			fprintln(errOut, "error: cannot get working directory:", err)

			return 1
		}
	}

	cliOverrides := Config{DatabasePath: flags.databasePath}

	cfg, sources, err := LoadConfig(workDir, flags.configPath, cliOverrides, flags.hasDatabaseOverride, env)
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	cmd := flags.remaining[0]
	if cmd == "-h" || cmd == helpFlag {
		printUsage(out)

		return 0
	}

	o := NewIO(out, errOut)
	sess := &session{cfg: cfg, path: resolveDatabasePath(cfg, workDir)}

	var cmdErr error

	switch cmd {
	case "create-table":
		cmdErr = cmdCreateTable(o, sess, flags.remaining[1:])
	case "drop-table":
		cmdErr = cmdDropTable(o, sess, flags.remaining[1:])
	case "tables":
		cmdErr = cmdTables(o, sess, flags.remaining[1:])
	case "insert":
		cmdErr = cmdInsert(o, sess, flags.remaining[1:])
	case "update":
		cmdErr = cmdUpdate(o, sess, flags.remaining[1:])
	case "delete":
		cmdErr = cmdDelete(o, sess, flags.remaining[1:])
	case "get":
		cmdErr = cmdGet(o, sess, flags.remaining[1:])
	case "rows":
		cmdErr = cmdRows(o, sess, flags.remaining[1:])
	case "sort":
		cmdErr = cmdSort(o, sess, flags.remaining[1:])
	case "print-config":
		cmdErr = cmdPrintConfig(o, cfg, sources)
	default:
		fprintln(errOut, "error: unknown command:", cmd)
		printUsage(errOut)

		return 1
	}

	if cmdErr != nil {
		fprintln(errOut, "error:", cmdErr)

		return 1
	}

	return 0
}

type globalFlags struct {
	workDir             string
	configPath          string
	databasePath        string
	hasDatabaseOverride bool
	remaining           []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --db flag (database file override)
	if arg == "--db" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.databasePath = args[idx+1]
		flags.hasDatabaseOverride = true

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--db="); ok {
		flags.databasePath = after
		flags.hasDatabaseOverride = true

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", errUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func cmdPrintConfig(o *IO, cfg Config, sources ConfigSources) error {
	formatted, err := FormatConfig(cfg)
	if err != nil {
		return err
	}

	o.Println(formatted)

	o.Println("")
	o.Println("# Sources:")

	if sources.Global != "" {
		o.Println("#   global:", sources.Global)
	}

	if sources.Project != "" {
		o.Println("#   project:", sources.Project)
	}

	if sources.Global == "" && sources.Project == "" {
		o.Println("#   (using defaults only)")
	}

	return nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func fprintf(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, format, a...)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

func printUsage(writer io.Writer) {
	fprintln(writer, `dbms - schema-validated tabular store

Usage: dbms [options] <command> [args]

Options:
  -C, --cwd <dir>    Run as if started in <dir>
  -c, --config       Use specified config file
  --db <file>        Database file (overrides config)

Commands:`)
	fprintln(writer, createTableHelp)
	fprintln(writer, dropTableHelp)
	fprintln(writer, tablesHelp)
	fprintln(writer, insertHelp)
	fprintln(writer, updateHelp)
	fprintln(writer, deleteHelp)
	fprintln(writer, getHelp)
	fprintln(writer, rowsHelp)
	fprintln(writer, sortHelp)
	fprintln(writer, `  print-config           Show resolved configuration`)
}
