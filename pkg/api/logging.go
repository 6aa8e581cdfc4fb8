package api

import (
	"errors"
	stdlog "log"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// HandleLogError logs errors intercepted by the logging decorators, unless they are one of the ignored errors
func HandleLogError(packageName, interfaceName, funcName string, err error, ignoredErrors ...error) {
	if err != nil {
		for _, e := range ignoredErrors {
			if errors.Is(err, e) {
				return
			}
		}
		log.Debug().Err(err).Msgf("%v.%v.%v decorator intercepted error", packageName, interfaceName, funcName)
	}
}

// InitLogging configures zerolog as json logger with stackdriver compatible severity field
func InitLogging(app, version, level string) {

	// log as severity for stackdriver logging to recognize the level
	zerolog.LevelFieldName = "severity"

	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// set some default fields added to all logs
	log.Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("app", app).
		Str("version", version).
		Logger()

	// use zerolog for any logs sent via standard log library
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)
}
