package cli

import (
	flag "github.com/spf13/pflag"
)

const sortHelp = `  sort <table> <column>  Sort rows in place by a column
    --desc                 Sort in descending order`

func cmdSort(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("sort", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: dbms sort <table> <column> [--desc]\n\n")
		fprintf(w, "Reorder the table's rows by a column. The new order is\n")
		fprintf(w, "persisted and equal values keep their relative order.\n\n")
		fprintf(w, "Options:\n")
		flagSet.PrintDefaults()
	}

	descending := flagSet.Bool("desc", false, "Sort in descending order")

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
		return errColumnNameRequired
	}

	db, err := sess.load()
	if err != nil {
		return err
	}

	table, err := db.GetTable(flagSet.Arg(0))
	if err != nil {
		return err
	}

	if err := table.SortBy(flagSet.Arg(1), *descending); err != nil {
		return err
	}

	if err := sess.save(db); err != nil {
		return err
	}

	for _, row := range table.ListRows() {
		if err := printRow(o, row); err != nil {
			return err
		}
	}

	return nil
}
