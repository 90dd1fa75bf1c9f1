package main

import (
	"os"

	"github.com/chrk623/google-trans2/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
