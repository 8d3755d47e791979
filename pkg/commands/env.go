package commands

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/aurora/pkg/commands/options"
	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/logger"
	"tableflip.dev/aurora/pkg/prompt"
	"tableflip.dev/aurora/pkg/store"
)

// env is what every command needs to reach the journal.
type env struct {
	Config     *store.FileConfig
	Disk       *store.Disk
	Repository *journal.Repository
}

// load resolves configuration, starts logging and opens the entry store.
func load() (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(logger.Config{Debug: debug || cfg.Debug, LogDir: cfg.LogDir}); err != nil {
		return nil, err
	}
	disk, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "path", cfg.BasePath())
	return &env{
		Config:     cfg,
		Disk:       disk,
		Repository: journal.NewRepository(disk),
	}, nil
}

// dateCompletions offers stored entry dates for shell completion.
func dateCompletions(toComplete string) []string {
	e, err := load()
	if err != nil {
		return nil
	}
	all, err := e.Repository.ListAll(context.Background())
	if err != nil {
		return nil
	}
	dates := make([]string, 0, len(all))
	for _, entry := range journal.Search(toComplete, all) {
		dates = append(dates, entry.Date)
	}
	return dates
}

// pickDate resolves the page a command targets: a picker when interactive,
// the first argument when given, today otherwise.
func (e *env) pickDate(cmd *cobra.Command, args []string, interactive bool) (string, error) {
	if interactive {
		all, err := e.Repository.ListAll(cmd.Context())
		if err != nil {
			return "", err
		}
		entry, err := prompt.Entry(os.Stdin, prompt.NopCloser(cmd.OutOrStdout()), all)
		if err != nil {
			return "", err
		}
		return entry.Date, nil
	}
	if len(args) > 0 {
		return options.ParseDate(args[0], time.Now())
	}
	return journal.Today(), nil
}
