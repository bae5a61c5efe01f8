package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/ksoeda/knes/nes"
	"github.com/ksoeda/knes/ui"
)

var (
	romPath = flag.String("rom", "", "path to an INES ROM file")
	scale   = flag.Int("scale", 2, "window scale factor")
	debug   = flag.Bool("debug", false, "start the stdin debug console instead of the UI")
)

const (
	screenWidth  = 256
	screenHeight = 240
)

func main() {
	flag.Parse()
	defer glog.Flush()
	if *romPath == "" {
		glog.Exit("No ROM given, use -rom")
	}
	data, err := os.ReadFile(*romPath)
	if err != nil {
		glog.Exitf("Failed to read the ROM: %v", err)
	}
	cartridge, err := nes.NewCartridge(data)
	if err != nil {
		glog.Exitf("Failed to load the ROM: %v", err)
	}
	glog.Infof("Loaded %s: mapper=%d, mirroring=%s", *romPath, cartridge.Mapper(), cartridge.Mirroring())
	console, err := nes.NewConsole(cartridge, *debug)
	if err != nil {
		glog.Exitf("Failed to create the console: %v", err)
	}
	if *debug {
		for {
			if _, err := console.Step(); err != nil {
				glog.Exit(err)
			}
		}
	}
	ui.Start(console, screenWidth*(*scale), screenHeight*(*scale))
}
