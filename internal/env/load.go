package env

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Load reads a .env file from the working directory into the process
// environment before viper picks up overrides. A missing file is fine.
func Load() {
	err := godotenv.Load()
	if err == nil {
		return
	}
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Msg("no .env file found")
		return
	}
	log.Error().Err(err).Msg("error loading .env file")
}
