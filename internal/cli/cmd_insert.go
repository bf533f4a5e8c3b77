package cli

import (
	flag "github.com/spf13/pflag"
)

const insertHelp = `  insert <table> col=v.. Insert a row (prints the stored row)`

func cmdInsert(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("insert", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: dbms insert <table> <column=value> [column=value ...]\n\n")
		fprintf(w, "Insert a row. Every schema column must be assigned.\n")
		fprintf(w, "Integer and real columns parse their values numerically.\n")
	}

	if hasHelpFlag(args) {
		flagSet.SetOutput(o.out)
		flagSet.Usage()

		return nil
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if flagSet.NArg() == 0 {
		return errTableNameRequired
	}

	db, err := sess.load()
	if err != nil {
		return err
	}

	table, err := db.GetTable(flagSet.Arg(0))
	if err != nil {
		return err
	}

	row, err := ParseAssignments(table.Schema(), flagSet.Args()[1:])
	if err != nil {
		return err
	}

	stored, err := table.Insert(row)
	if err != nil {
		return err
	}

	if err := sess.save(db); err != nil {
		return err
	}

	return printRow(o, stored)
}
