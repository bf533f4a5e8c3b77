package cli

import (
	"sort"

	flag "github.com/spf13/pflag"
)

const tablesHelp = `  tables                 List tables with row counts`

func cmdTables(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("tables", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		fprintf(flagSet.Output(), "Usage: dbms tables\n\nList tables with row counts.\n")
	}

	if hasHelpFlag(args) {
		flagSet.SetOutput(o.out)
		flagSet.Usage()

		return nil
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	db, err := sess.load()
	if err != nil {
		return err
	}

	tables := db.ListTables()

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		o.Printf("%s\t%d\n", name, tables[name].Len())
	}

	return nil
}
