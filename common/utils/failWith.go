package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ttacon/chalk"
	bettererrors "github.com/xtuc/better-errors"
	bettererrorstree "github.com/xtuc/better-errors/printer/tree"
)

var version = "dev"

func GetVersion() string {
	return version
}

// PrintFailure writes err under the command line and version of the
// running hullfilter. Chains are printed as a tree.
func PrintFailure(w io.Writer, err error) {
	command := strings.Join(os.Args, " ")

	berror := bettererrors.
		New(command).
		SetContext("version", GetVersion())

	if chain, ok := err.(*bettererrors.Chain); ok {
		berror = berror.With(chain)
	} else {
		berror = berror.With(bettererrors.NewFromErr(err))
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, chalk.Red.Color("hullfilter failed"))
	fmt.Fprintln(w, "")
	fmt.Fprint(w, bettererrorstree.PrintChain(berror))
	fmt.Fprintln(w, "")
}

func FailWith(err error) {
	PrintFailure(os.Stderr, err)
	os.Exit(1)
}

func PrintWarning(w io.Writer, err error) {
	fmt.Fprintln(w, chalk.Yellow.Color("warning"))

	if chain, ok := err.(*bettererrors.Chain); ok {
		fmt.Fprint(w, bettererrorstree.PrintChain(chain))
		return
	}

	fmt.Fprintln(w, err.Error())
}

// WarnWith reports err and lets the run go on.
func WarnWith(err error) {
	PrintWarning(os.Stderr, err)
}
