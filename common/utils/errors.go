package utils

import (
	"log"

	"github.com/ttacon/chalk"
	bettererrors "github.com/xtuc/better-errors"
)

// Check logs msg in red and panics with a chain holding err, if any.
func Check(err error, msg string) {
	if err != nil {
		log.Print(chalk.Red.Color(msg))

		panic(bettererrors.
			NewFromString(msg).
			With(bettererrors.NewFromErr(err)))
	}
}
