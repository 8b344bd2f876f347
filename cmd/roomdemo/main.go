package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/lantern3d/lantern"
)

func init() {
	// glfw event handling must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	colorMap := flag.String("colormap", "", "path to the room color map texture (png or jpeg)")
	font := flag.String("font", "", "path to a ttf/otf font for the HUD overlay")
	tier1 := flag.Bool("tier1", false, "force tier-1 shading (2 lights)")
	seed := flag.Int64("seed", 0, "light launch seed (0 = time-based)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	app, err := lantern.NewAppBuilder().
		UseModule(lantern.LoggingModule{Prefix: "roomdemo", Debug: *debug}).
		UseModule(lantern.WindowModule{Width: 1024, Height: 768, Title: "Multiple Point Lights"}).
		UseModule(lantern.InputModule{}).
		UseModule(lantern.TimeModule{}).
		UseModule(lantern.AssetServerModule{}).
		UseModule(lantern.LightsModule{Seed: *seed}).
		UseModule(lantern.OrbitCameraModule{}).
		UseModule(lantern.ControlsModule{}).
		UseModule(lantern.RendererModule{
			ColorMapPath: *colorMap,
			FontPath:     *font,
			EmulateTier1: *tier1,
		}).
		Build()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	app.Run()
}
