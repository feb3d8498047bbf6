// Draws "hello, world" with a single font and writes it to a PNG.
package main

import (
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/glyphrun/glyphrun"
)

type Settings struct {
	FontPath string `envconfig:"FONT_PATH"`
	Output   string `envconfig:"OUTPUT" default:"hello.png"`
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

	data := goregular.TTF
	if s.FontPath != "" {
		var err error
		if data, err = os.ReadFile(s.FontPath); err != nil {
			log.Fatal().Err(err).Str("path", s.FontPath).Msg("couldn't read font")
			return
		}
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		log.Fatal().Err(err).Msg("couldn't parse font")
		return
	}

	img, err := glyphrun.DrawPlain([]string{"hello, world"}, ttf, 32, glyphrun.ImageOptions{
		Width:  300,
		Height: 100,
	})
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
