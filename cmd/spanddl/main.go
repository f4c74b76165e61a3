package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
