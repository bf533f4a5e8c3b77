// dbms-shell is an interactive shell for a database snapshot file.
//
// Usage:
//
//	dbms-shell [opts] <database-file>
//
// Options:
//
//	-n, --name    Database name when creating a fresh snapshot (default: "default")
//
// Commands (in REPL):
//
//	tables                          List tables with row counts
//	create <table> <col:type>...    Create a table
//	drop <table>                    Drop a table
//	insert <table> <col=value>...   Insert a row
//	rows <table>                    List rows
//	get <table> <id>                Show one row
//	set <table> <id> <col=value>... Update columns of a row
//	del <table> <id>                Delete a row
//	sort <table> <column> [desc]    Sort rows by a column
//	save                            Persist the snapshot
//	help                            Show this help
//	exit / quit / q                 Exit (saves first)
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/LenaPetrachkova/dbms/internal/cli"
	"github.com/LenaPetrachkova/dbms/pkg/dbms"
	"github.com/LenaPetrachkova/dbms/pkg/dbms/jsonstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := flag.NewFlagSet("dbms-shell", flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: dbms-shell [options] <database-file>\n\nOptions:\n")
		flags.PrintDefaults()
	}

	name := flags.StringP("name", "n", "default", "Database name for a fresh snapshot")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	if flags.NArg() == 0 {
		flags.Usage()

		return errors.New("missing database file path")
	}

	path := flags.Arg(0)

	db, err := jsonstore.Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}

		db = dbms.NewDatabase(*name)
	}

	r := &REPL{db: db, path: path}

	return r.loop()
}

// REPL holds the interactive session state.
type REPL struct {
	db    *dbms.Database
	path  string
	liner *liner.State
	dirty bool
}

func (r *REPL) loop() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("dbms-shell - %s (%s)\n", r.db.Name(), r.path)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("dbms> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")

			r.flush()
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "tables", "ls":
			r.cmdTables()

		case "create":
			r.cmdCreate(args)

		case "drop":
			r.cmdDrop(args)

		case "insert", "add":
			r.cmdInsert(args)

		case "rows", "list":
			r.cmdRows(args)

		case "get", "show":
			r.cmdGet(args)

		case "set", "update":
			r.cmdSet(args)

		case "del", "delete":
			r.cmdDel(args)

		case "sort":
			r.cmdSort(args)

		case "save":
			r.cmdSave()

		case "clear", "cls":
			fmt.Print("\033[H\033[2J")

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.flush()
	r.saveHistory()

	return nil
}

func (r *REPL) printHelp() {
	fmt.Println(`Commands:
  tables                          List tables with row counts
  create <table> <col:type>...    Create a table
  drop <table>                    Drop a table
  insert <table> <col=value>...   Insert a row
  rows <table>                    List rows
  get <table> <id>                Show one row
  set <table> <id> <col=value>... Update columns of a row
  del <table> <id>                Delete a row
  sort <table> <column> [desc]    Sort rows by a column
  save                            Persist the snapshot
  help                            Show this help
  exit / quit / q                 Exit (saves first)

Column types: integer real char string htmlFile
Bounded:      col:stringInvl[:min[:max]]
              col:interval:base[:min[:max]]`)
}

func (r *REPL) cmdTables() {
	tables := r.db.ListTables()

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s\t%d\n", name, tables[name].Len())
	}
}

func (r *REPL) cmdCreate(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: create <table> <col:type>...")

		return
	}

	specs := make([]dbms.ColumnSpec, 0, len(args)-1)

	for _, arg := range args[1:] {
		spec, err := cli.ParseColumnSpec(arg)
		if err != nil {
			fmt.Printf("Error: %v\n", err)

			return
		}

		specs = append(specs, spec)
	}

	if _, err := r.db.CreateTable(args[0], specs); err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	r.dirty = true

	fmt.Printf("Created table %s\n", args[0])
}

func (r *REPL) cmdDrop(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: drop <table>")

		return
	}

	if err := r.db.DropTable(args[0]); err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	r.dirty = true

	fmt.Printf("Dropped table %s\n", args[0])
}

func (r *REPL) cmdInsert(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: insert <table> <col=value>...")

		return
	}

	table, err := r.db.GetTable(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	row, err := cli.ParseAssignments(table.Schema(), args[1:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	stored, err := table.Insert(row)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	r.dirty = true

	printRow(stored)
}

func (r *REPL) cmdRows(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: rows <table>")

		return
	}

	table, err := r.db.GetTable(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	for _, row := range table.ListRows() {
		printRow(row)
	}

	fmt.Printf("(%d rows)\n", table.Len())
}

func (r *REPL) cmdGet(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: get <table> <id>")

		return
	}

	table, err := r.db.GetTable(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	row, err := table.Get(args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	printRow(row)
}

func (r *REPL) cmdSet(args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: set <table> <id> <col=value>...")

		return
	}

	table, err := r.db.GetTable(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	values, err := cli.ParseAssignments(table.Schema(), args[2:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	updated, err := table.Update(args[1], values)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	r.dirty = true

	printRow(updated)
}

func (r *REPL) cmdDel(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: del <table> <id>")

		return
	}

	table, err := r.db.GetTable(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	if err := table.Delete(args[1]); err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	r.dirty = true

	fmt.Println("Deleted")
}

func (r *REPL) cmdSort(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: sort <table> <column> [desc]")

		return
	}

	descending := len(args) > 2 && strings.EqualFold(args[2], "desc")

	table, err := r.db.GetTable(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	if err := table.SortBy(args[1], descending); err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	r.dirty = true

	for _, row := range table.ListRows() {
		printRow(row)
	}
}

func (r *REPL) cmdSave() {
	if err := jsonstore.Save(r.db, r.path); err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	r.dirty = false

	fmt.Printf("Saved %s\n", r.path)
}

// flush persists pending mutations on exit.
func (r *REPL) flush() {
	if !r.dirty {
		return
	}

	if err := jsonstore.Save(r.db, r.path); err != nil {
		fmt.Printf("Error saving %s: %v\n", r.path, err)
	}
}

func printRow(row dbms.Row) {
	data, err := json.Marshal(map[string]any(row))
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Println(string(data))
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".dbms_shell_history")
}

// saveHistory persists command history to disk.
func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			_, _ = r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

// completer provides tab completion for commands.
func (r *REPL) completer(line string) []string {
	commands := []string{
		"tables", "ls", "create", "drop",
		"insert", "add", "rows", "list",
		"get", "show", "set", "update",
		"del", "delete", "sort", "save",
		"clear", "cls", "help", "exit", "quit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}
