package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger(app string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}

// SetLevel applies a named log level globally. Unknown names keep the
// current level.
func SetLevel(name string) {
	if lvl, err := zerolog.ParseLevel(name); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}
