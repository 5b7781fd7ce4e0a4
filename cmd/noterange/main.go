// Command noterange prints the estimated base note range of a short fipple
// flute over a grid of bore diameters and lengths.
package main

import (
	"context"
	"flag"
	"io"
	"os"

	log "github.com/golang/glog"

	"github.com/lozord/flutetone/internal/app"
)

var configPath = flag.String("config", "", "optional TOML file overriding the built-in constants")

func main() {
	flag.Parse()
	ctx := context.Background()
	log.Info("starting up and sweeping resonator grid")
	if err := doMain(ctx, os.Stdout); err != nil {
		log.Exitf("failed to run: %v", err)
	}
}

func doMain(ctx context.Context, out io.Writer) error {
	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	return app.NoteRange(ctx, cfg, out)
}
