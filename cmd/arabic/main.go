// Shapes an Arabic line in logical order and draws the RTL-reordered
// glyphs to a PNG.
package main

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/glyphrun/glyphrun"
)

type Settings struct {
	Font   string `envconfig:"FONT" default:"NotoSansArabic-Regular.ttf"`
	Output string `envconfig:"OUTPUT" default:"arabic.png"`
}

var (
	s   Settings
	log = zerolog.New(os.Stderr).Output(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Timestamp().Logger()
)

func main() {
	if err := envconfig.Process("", &s); err != nil {
		log.Fatal().Err(err).Msg("couldn't process envconfig")
		return
	}

	reg := glyphrun.NewRegistry()
	if err := reg.Load(s.Font); err != nil {
		log.Fatal().Err(err).Msg("couldn't load font")
		return
	}

	shaper := glyphrun.NewShaper(40)
	shaper.Detector = glyphrun.NewDetector()

	img, err := glyphrun.DrawText(
		[]string{"مرحبا بالعالم"},
		reg, shaper,
		glyphrun.ImageOptions{Width: 500, Height: 200, Direction: glyphrun.DirectionAuto},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("couldn't draw image")
		return
	}

	if err := glyphrun.WritePNG(s.Output, img); err != nil {
		log.Fatal().Err(err).Str("path", s.Output).Msg("couldn't write image")
		return
	}
	log.Info().Str("path", s.Output).Msg("image written")
}
