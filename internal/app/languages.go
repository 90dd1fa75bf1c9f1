package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/chrk623/google-trans2/internal/translation"
)

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	options := translation.LanguageOptions(nil)
	rows := make([][]string, 0, len(options))
	for _, option := range options {
		rows = append(rows, []string{option.Code, option.Label})
	}

	if err := writeTable([]string{"CODE", "LANGUAGE"}, rows); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
