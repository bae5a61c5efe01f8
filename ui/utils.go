package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/ksoeda/knes/nes"
)

// Shaders for a 2D texture.
const (
	vertexShader = `
  #version 330

  attribute vec3 position;
  attribute vec2 uv;
  varying vec2 vuv;
  void main(void){
    gl_Position = vec4(position, 1.0);
    vuv = uv;
  }
  ` + "\x00"

	fragmentShader = `
  #version 330

  varying vec2 vuv;
  uniform sampler2D texture;
  void main(void){
    gl_FragColor = texture2D(texture, vuv);
  }
  ` + "\x00"
)

// The frame is drawn as a fullscreen fan of two triangles with the texture
// flipped vertically, image rows grow downward.
var (
	quadPosition = []float32{
		1, 1,
		-1, 1,
		-1, -1,
		1, -1,
	}
	quadUV = []float32{
		1, 0,
		0, 0,
		0, 1,
		1, 1,
	}
)

// screen owns the GL objects used to present frames: the shader program,
// one streaming texture, and the cached attribute locations. Everything is
// created once, draw only re-uploads pixels.
type screen struct {
	program     uint32
	texture     uint32
	positionLoc uint32
	uvLoc       uint32
}

// infoLog extracts a shader or program build log.
func infoLog(object uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var length int32
	getiv(object, gl.INFO_LOG_LENGTH, &length)
	log := strings.Repeat("\x00", int(length+1))
	getLog(object, length, nil, gl.Str(log))
	return log
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource := gl.Str(source)
	gl.ShaderSource(shader, 1, &csource, nil)
	gl.CompileShader(shader)
	var ok int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		return 0, fmt.Errorf("failed to compile a shader: %v", infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog))
	}
	return shader, nil
}

// newScreen compiles the shaders, links the program and allocates the
// texture the frames stream into.
func newScreen() (*screen, error) {
	program := gl.CreateProgram()
	for _, stage := range []struct {
		source     string
		shaderType uint32
	}{
		{vertexShader, gl.VERTEX_SHADER},
		{fragmentShader, gl.FRAGMENT_SHADER},
	} {
		shader, err := compileShader(stage.source, stage.shaderType)
		if err != nil {
			return nil, err
		}
		gl.AttachShader(program, shader)
		defer gl.DeleteShader(shader)
	}
	gl.LinkProgram(program)
	var ok int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		return nil, fmt.Errorf("failed to link a program: %v", infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog))
	}
	gl.UseProgram(program)
	s := &screen{program: program}
	gl.GenTextures(1, &s.texture)
	gl.BindTexture(gl.TEXTURE_2D, s.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	s.positionLoc = uint32(gl.GetAttribLocation(program, gl.Str("position\x00")))
	s.uvLoc = uint32(gl.GetAttribLocation(program, gl.Str("uv\x00")))
	gl.Uniform1i(gl.GetUniformLocation(program, gl.Str("texture\x00")), 0)
	gl.EnableVertexAttribArray(s.positionLoc)
	gl.EnableVertexAttribArray(s.uvLoc)
	return s, nil
}

// draw uploads the frame into the texture and draws the quad.
func (s *screen) draw(frame *image.RGBA) {
	gl.BindTexture(gl.TEXTURE_2D, s.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(frame.Rect.Size().X), int32(frame.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
	gl.VertexAttribPointer(s.positionLoc, 2, gl.FLOAT, false, 0, gl.Ptr(quadPosition))
	gl.VertexAttribPointer(s.uvLoc, 2, gl.FLOAT, false, 0, gl.Ptr(quadUV))
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
}

// getKeys gets the state of keyboard, WASD for directions, J for primary.
func getKeys(window *glfw.Window) [8]bool {
	var keys [8]bool
	keys[nes.ButtonRight] = window.GetKey(glfw.KeyD) == glfw.Press
	keys[nes.ButtonLeft] = window.GetKey(glfw.KeyA) == glfw.Press
	keys[nes.ButtonDown] = window.GetKey(glfw.KeyS) == glfw.Press
	keys[nes.ButtonUp] = window.GetKey(glfw.KeyW) == glfw.Press
	keys[nes.ButtonStart] = window.GetKey(glfw.KeyG) == glfw.Press
	keys[nes.ButtonSelect] = window.GetKey(glfw.KeyF) == glfw.Press
	keys[nes.ButtonB] = window.GetKey(glfw.KeyH) == glfw.Press
	keys[nes.ButtonA] = window.GetKey(glfw.KeyJ) == glfw.Press
	return keys
}
