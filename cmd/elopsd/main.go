/*
Elopsd starts an Elops analysis server and begins listening for new
connections.

Once started, the server will listen for HTTP requests and respond to them
using REST protocol. By default, it will listen on localhost:8080. This can
be changed with the --listen/-l flag (or config via environment var).

Analyses submitted to the server are stored in the configured database so
past results can be fetched again, including their rendered HTML artifacts.

The flags are:

	-v, --version
		Give the current version of the Elops server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment
		variable ELOPS_LISTEN_ADDRESS, and if that is not given, will
		default to localhost:8080.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the
		following: inmem, sqlite. inmem has no further params. sqlite needs
		the path to the data directory such as sqlite:path/to/db_dir. If
		not given, will default to the value of environment variable
		ELOPS_DATABASE. If no DB driver is specified or an empty one is
		given, an in-memory database is automatically selected.
*/
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dekarrin/elops/internal/render"
	"github.com/dekarrin/elops/internal/version"
	"github.com/dekarrin/elops/server"
	"github.com/dekarrin/elops/server/dao"
	"github.com/dekarrin/elops/server/dao/inmem"
	"github.com/dekarrin/elops/server/dao/sqlite"
)

const (
	EnvListen = "ELOPS_LISTEN_ADDRESS"
	EnvDB     = "ELOPS_DATABASE"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the Elops server and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (Elops v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()

	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	// get address info
	addr := "localhost"
	port := 8080
	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr != "" {
		bindParts := strings.SplitN(listenAddr, ":", 2)
		if len(bindParts) != 2 {
			fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
			os.Exit(1)
		}

		var err error

		addr = bindParts[0]
		port, err = strconv.Atoi(bindParts[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%q is not a valid port number.\nDo -h for help.\n", bindParts[1])
			os.Exit(1)
		}
	}

	// get DB info
	dbConnect := os.Getenv(EnvDB)
	if pflag.Lookup("db").Changed {
		dbConnect = *flagDB
	}

	store, err := openStore(dbConnect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(store, render.DefaultOptions())

	log.Printf("Elops server v%s listening on %s:%d", version.ServerCurrent, addr, port)
	if err := srv.ServeForever(addr, port); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}

func openStore(connect string) (dao.Store, error) {
	driver, params, _ := strings.Cut(connect, ":")

	switch driver {
	case "", "inmem":
		return inmem.NewDatastore(), nil
	case "sqlite":
		if params == "" {
			return nil, fmt.Errorf("sqlite DB connector needs a data directory, such as sqlite:path/to/db_dir")
		}
		return sqlite.NewDatastore(params)
	default:
		return nil, fmt.Errorf("unknown DB driver %q; must be one of: inmem, sqlite", driver)
	}
}
