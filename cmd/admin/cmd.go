package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/yigit/unicampus/internal/app/migrations"
	"github.com/yigit/unicampus/internal/app/services"
	"github.com/yigit/unicampus/internal/db"
	"github.com/yigit/unicampus/internal/seed"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db  *db.DB
	svc *services.Services
	out io.Writer
	lgr zerolog.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate              - create or upgrade the schema")
	fmt.Fprintln(cli.out, "  seed                 - load default faculties, promotions and students into an empty registry")
	fmt.Fprintln(cli.out, "  export -o FILE.xlsx  - write the student roster")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportCmd.SetOutput(cli.out)
	exportOut := exportCmd.String("o", "students.xlsx", "Destination of the XLSX roster.")

	switch args[1] {
	case "migrate":
		return cli.migrate(ctx)
	case "seed":
		return cli.seed(ctx)
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportOut == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.export(ctx, *exportOut)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) migrate(ctx context.Context) error {
	if err := migrations.NewMigrator(cli.db).Migrate(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "schema is up to date")
	return nil
}

func (cli *commandLine) seed(ctx context.Context) error {
	if err := cli.migrate(ctx); err != nil {
		return err
	}
	summary, err := seed.CreateDefaultData(ctx, cli.svc, cli.lgr)
	fmt.Fprintf(cli.out, "added %d faculties, %d promotions, %d students\n",
		summary.Faculties, summary.Promotions, summary.Students)
	if err != nil {
		return err
	}

	total, err := cli.svc.StudentService.CountStudents(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "registry holds %d students\n", total)
	return nil
}

func (cli *commandLine) export(ctx context.Context, path string) (err error) {
	// a fresh database file exports an empty roster
	if err := migrations.NewMigrator(cli.db).Migrate(ctx); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	n, err := cli.svc.ExportService.Students(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "wrote %d students to %s\n", n, path)
	return nil
}
