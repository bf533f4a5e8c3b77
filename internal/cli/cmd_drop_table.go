package cli

import (
	flag "github.com/spf13/pflag"
)

const dropTableHelp = `  drop-table <name>      Drop a table and all its rows`

func cmdDropTable(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("drop-table", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: dbms drop-table <name>\n\n")
		fprintf(w, "Drop a table. The freed name is immediately reusable.\n")
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

	if err := db.DropTable(flagSet.Arg(0)); err != nil {
		return err
	}

	return sess.save(db)
}
