package ui

import (
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/ksoeda/knes/nes"
)

// Start is the main entrypoint, it owns the wall clock: the console is
// stepped until the PPU signals a finished frame, which is then presented.
func Start(console nes.Console, width int, height int) {
	if err := glfw.Init(); err != nil {
		glog.Fatalln(err)
	}
	defer glfw.Terminate()
	window, err := glfw.CreateWindow(width, height, "KNES", nil, nil)
	if err != nil {
		glog.Fatalln(err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glog.Fatalln(err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	screen, err := newScreen()
	if err != nil {
		glog.Fatalln(err)
	}
	audio := newAudio()
	if err := audio.start(); err != nil {
		glog.Warningf("Audio disabled: %v", err)
	} else {
		console.SetAudioOut(audio.samples)
		defer audio.terminate()
	}
	for !window.ShouldClose() {
		time.Sleep(1 * time.Millisecond)
		if _, err := console.Step(); err != nil {
			glog.Fatalln(err)
		}
		if frame, ok := console.Frame(); ok {
			screen.draw(frame)
			console.SetButtons(getKeys(window))
			window.SwapBuffers()
			glfw.PollEvents()
		}
	}
}
