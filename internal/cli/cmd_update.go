package cli

import (
	flag "github.com/spf13/pflag"
)

const updateHelp = `  update <table> <id> col=v..
                         Update columns of a row`

func cmdUpdate(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("update", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: dbms update <table> <id> <column=value> [column=value ...]\n\n")
		fprintf(w, "Update the given columns of a row. Unassigned columns keep\n")
		fprintf(w, "their values. Row IDs never change.\n")
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

	if flagSet.NArg() < 2 {
		return errRowIDRequired
	}

	db, err := sess.load()
	if err != nil {
		return err
	}

	table, err := db.GetTable(flagSet.Arg(0))
	if err != nil {
		return err
	}

	values, err := ParseAssignments(table.Schema(), flagSet.Args()[2:])
	if err != nil {
		return err
	}

	updated, err := table.Update(flagSet.Arg(1), values)
	if err != nil {
		return err
	}

	if err := sess.save(db); err != nil {
		return err
	}

	return printRow(o, updated)
}
