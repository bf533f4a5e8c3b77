// Package main provides dbms-server, a JSON HTTP API over a database
// snapshot file.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/LenaPetrachkova/dbms/internal/web"
)

const readHeaderTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := flag.NewFlagSet("dbms-server", flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: dbms-server [options]\n\nOptions:\n")
		flags.PrintDefaults()
	}

	addr := flags.String("addr", "127.0.0.1:8080", "Listen address")
	path := flags.String("db", "database.json", "Database snapshot file")
	name := flags.String("name", "default", "Database name for a fresh snapshot")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	srv, err := web.NewServer(*path, *name)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	fmt.Printf("dbms-server listening on %s (db: %s)\n", *addr, *path)

	return httpSrv.ListenAndServe()
}
