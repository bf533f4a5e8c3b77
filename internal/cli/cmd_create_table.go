package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/LenaPetrachkova/dbms/pkg/dbms"
)

const createTableHelp = `  create-table <name>    Create a table
    --column name:type     Schema column (repeatable)
                           Types: integer real char string htmlFile
                           Bounded: name:stringInvl[:min[:max]]
                                    name:interval:base[:min[:max]]`

func cmdCreateTable(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("create-table", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		w := flagSet.Output()
		fprintf(w, "Usage: dbms create-table <name> --column name:type [--column ...]\n\n")
		fprintf(w, "Create a table with a fixed column schema.\n\n")
		fprintf(w, "Options:\n")
		flagSet.PrintDefaults()
	}

	columns := flagSet.StringArray("column", nil, "Schema column as name:type (repeatable)")

	if hasHelpFlag(args) {
		flagSet.SetOutput(o.out)
		flagSet.Usage()

		return nil
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	name := ""
	if flagSet.NArg() > 0 {
		name = flagSet.Arg(0)
	}

	if name == "" {
		return errTableNameRequired
	}

	if len(*columns) == 0 {
		return errColumnRequired
	}

	specs := make([]dbms.ColumnSpec, 0, len(*columns))

	for _, raw := range *columns {
		spec, err := ParseColumnSpec(raw)
		if err != nil {
			return err
		}

		specs = append(specs, spec)
	}

	db, err := sess.load()
	if err != nil {
		return err
	}

	table, err := db.CreateTable(name, specs)
	if err != nil {
		return err
	}

	if err := sess.save(db); err != nil {
		return err
	}

	o.Println(table.Name())

	return nil
}
