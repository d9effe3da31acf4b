package testutil

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

var (
	logFile   = ""
	logLevel  = "debug"
	logStderr = false
)

func init() {
	flag.StringVar(&logFile, "log-file", logFile, "`file` to use for logging")
	flag.StringVar(&logLevel, "log-level", logLevel,
		"log level: trace, debug, info, warn, error, fatal, or panic")
	flag.BoolVar(&logStderr, "log-stderr", logStderr, "log to standard error")
	flag.BoolVar(&logStderr, "s", logStderr, "log to standard error")
}

// SetupLogger sends the standard logger to file, unless -log-file or -s was given, and sets
// the level from -log-level. Call it from TestMain after flag.Parse.
func SetupLogger(file string) {
	if !logStderr {
		if logFile != "" {
			file = logFile
		}

		w, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			panic(fmt.Sprintf("testutil: unable to open log file: %s", err))
		}
		fmt.Fprintln(w)
		log.SetOutput(w)
	}

	ll, err := log.ParseLevel(logLevel)
	if err != nil {
		panic(fmt.Sprintf("testutil: %s", err))
	}
	log.SetLevel(ll)
	log.SetFormatter(&log.TextFormatter{DisableLevelTruncation: true})

	log.WithFields(log.Fields{
		"pid":  os.Getpid(),
		"file": file,
	}).Info("tests starting")
}
