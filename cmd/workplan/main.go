package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dedatech/workplan/internal/cli"
	"github.com/dedatech/workplan/internal/db"
	"github.com/dedatech/workplan/internal/directory"
	"github.com/dedatech/workplan/internal/repository"
	"github.com/dedatech/workplan/internal/schedule"
	"github.com/dedatech/workplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.workplan/workplan.db
	dbPath := os.Getenv("WORKPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".workplan", "workplan.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	iterationRepo := repository.NewSQLiteIterationRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	linkRepo := repository.NewSQLiteTaskLinkRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	memberRepo := repository.NewSQLiteMemberRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	validator := schedule.NewValidator(taskRepo, linkRepo)
	names := directory.NewCachedDirectory(userRepo)
	builder := schedule.NewBuilder(projectRepo, iterationRepo, taskRepo, names)

	// Use-case telemetry goes to stderr when WORKPLAN_LOG is set.
	var logSink io.Writer
	if os.Getenv("WORKPLAN_LOG") != "" {
		logSink = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(logSink)

	app := &cli.App{
		Projects:   service.NewProjectService(projectRepo, memberRepo, uow, observer),
		Iterations: service.NewIterationService(iterationRepo, projectRepo),
		Tasks:      service.NewTaskService(taskRepo, projectRepo),
		Schedule: service.NewScheduleService(taskRepo, linkRepo, validator, builder,
			service.AllowAll{}, nil, observer),
		Import: service.NewImportService(uow, observer),
		Users:  service.NewUserService(userRepo, names, observer),
		UserID: userID(),
	}

	// Plain output when not attached to a terminal.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		os.Setenv("NO_COLOR", "1")
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func userID() string {
	if id := os.Getenv("WORKPLAN_USER"); id != "" {
		return id
	}
	return "local"
}
