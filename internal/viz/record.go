package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// Pixel size of one Braille cell in recorded frames.
const (
	recordCharW = 8
	recordCharH = 16
)

// Recorder collects canvas frames for an animated GIF.
type Recorder struct {
	frames []*image.Paletted
	// Delay between frames in hundredths of a second.
	Delay int
	fg    color.Color
	bg    color.Color
}

// NewRecorder returns a recorder drawing in the theme's colours.
func NewRecorder(t Theme) *Recorder {
	r := &Recorder{Delay: 2, fg: color.White, bg: color.Black}
	if c, err := colorful.Hex(string(t.Arena)); err == nil {
		r.fg = c
	}
	if c, err := colorful.Hex(string(t.Background)); err == nil {
		r.bg = c
	}
	return r
}

func (r *Recorder) Capture(c *Canvas) {
	r.frames = append(r.frames, c.Image(recordCharW, recordCharH, r.fg, r.bg))
}

func (r *Recorder) Len() int { return len(r.frames) }

// Save writes the frames as a looping GIF.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return errors.New("no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
