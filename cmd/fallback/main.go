// Draws a mixed Latin+emoji line: the primary font covers the Latin text
// and an emoji font is substituted for the parts it cannot render.
package main

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/glyphrun/glyphrun"
)

type Settings struct {
	PrimaryFont string `envconfig:"PRIMARY_FONT" default:"Roboto-Regular.ttf"`
	EmojiFont   string `envconfig:"EMOJI_FONT" default:"NotoColorEmoji.ttf"`
	Output      string `envconfig:"OUTPUT" default:"fallback.png"`
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
	if err := reg.Load(s.PrimaryFont); err != nil {
		log.Fatal().Err(err).Msg("couldn't load primary font")
		return
	}
	if err := reg.Load(s.EmojiFont); err != nil {
		log.Fatal().Err(err).Msg("couldn't load emoji font")
		return
	}

	shaper := glyphrun.NewShaper(20)
	img, err := glyphrun.DrawText(
		[]string{"hello, world 🌎"},
		reg, shaper,
		glyphrun.ImageOptions{Width: 500, Height: 100},
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
