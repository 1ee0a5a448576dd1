// Package logging configures the process-wide logrus logger.
package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup configures logrus output and level. Production gets JSON lines,
// everything else gets the human-readable text formatter.
func Setup(env, level string) {
	log.SetOutput(os.Stdout)

	if env == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithError(err).Warnf("unknown log level %q, falling back to info", level)
		lvl = log.InfoLevel
	}

	log.SetLevel(lvl)
}
