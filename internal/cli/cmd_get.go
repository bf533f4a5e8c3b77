package cli

import (
	flag "github.com/spf13/pflag"
)

const getHelp = `  get <table> <id>       Print one row as JSON`

func cmdGet(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("get", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		fprintf(flagSet.Output(), "Usage: dbms get <table> <id>\n\nPrint one row as a JSON object.\n")
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

	row, err := table.Get(flagSet.Arg(1))
	if err != nil {
		return err
	}

	return printRow(o, row)
}
