// Command c5tone writes a two second C5 reference tone to C5_note.wav.
package main

import (
	"context"
	"flag"
	"io"
	"os"

	log "github.com/golang/glog"

	"github.com/lozord/flutetone/internal/app"
)

const note = "C5"

var (
	configPath = flag.String("config", "", "optional TOML file overriding the built-in constants")
	outPath    = flag.String("out", "", "output WAV path; defaults to the configured path for "+note)
)

func main() {
	flag.Parse()
	ctx := context.Background()
	log.Infof("starting up and rendering %s", note)
	if err := doMain(ctx, os.Stdout); err != nil {
		log.Exitf("failed to run: %v", err)
	}
}

func doMain(ctx context.Context, out io.Writer) error {
	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	p, err := app.ToneByName(cfg, note, *outPath)
	if err != nil {
		return err
	}
	return app.GenerateTone(ctx, p, out)
}
