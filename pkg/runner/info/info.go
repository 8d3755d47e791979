package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/store"
)

type Info struct {
	Config     *store.FileConfig
	Repository *journal.Repository
	Out        io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	w := n.Out
	if w == nil {
		w = os.Stdout
	}

	if override := os.Getenv("AURORA_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "AURORA_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, "AURORA_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(w, "Config.path:  ", n.Config.BasePath())
	_, _ = fmt.Fprintln(w, "Config.assets:", n.Config.AssetsPath())
	_, _ = fmt.Fprintln(w, "Config.logs:  ", n.Config.LogDir)

	if n.Repository == nil {
		return fmt.Errorf("no journal repository")
	}

	all, err := n.Repository.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		_, _ = fmt.Fprintln(w, "Pages: none")
		return nil
	}
	photos := 0
	for _, e := range all {
		photos += len(e.Images)
	}
	// all is newest first.
	_, _ = fmt.Fprintf(w, "Pages: %d (%s to %s), %d photos\n", len(all), all[len(all)-1].Date, all[0].Date, photos)
	return nil
}
