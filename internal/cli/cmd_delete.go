package cli

import (
	flag "github.com/spf13/pflag"
)

const deleteHelp = `  delete <table> <id>    Delete a row`

func cmdDelete(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("delete", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		fprintf(flagSet.Output(), "Usage: dbms delete <table> <id>\n\nDelete a row by ID.\n")
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

	if err := table.Delete(flagSet.Arg(1)); err != nil {
		return err
	}

	return sess.save(db)
}
