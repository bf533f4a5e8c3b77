package cli

import (
	flag "github.com/spf13/pflag"
)

const rowsHelp = `  rows <table>           Print all rows in insertion order`

func cmdRows(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("rows", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		fprintf(flagSet.Output(), "Usage: dbms rows <table>\n\nPrint all rows, one JSON object per line.\n")
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

	for _, row := range table.ListRows() {
		if err := printRow(o, row); err != nil {
			return err
		}
	}

	return nil
}
