package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	googletrans "github.com/chrk623/google-trans2"

	"github.com/chrk623/google-trans2/internal/cli"
	"github.com/chrk623/google-trans2/internal/langdetect"
)

func runDetect(args []string) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	provider := fs.String("provider", "", "Detection provider name")
	offline := fs.Bool("offline", false, "Detect locally without calling the backend")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "detect requires one text argument")
		printDetectUsage()
		return 2
	}

	text := strings.TrimSpace(fs.Arg(0))
	if text == "" {
		fmt.Fprintln(os.Stderr, "detect argument must not be empty")
		return 2
	}

	if *offline {
		code := langdetect.DetectISO6391(text)
		if code == "" {
			fmt.Fprintln(os.Stderr, "Could not detect a language")
			return 1
		}
		printDetection(code, googletrans.LanguageName(code))
		return 0
	}

	rt, err := setupRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := commandContext(*timeout)
	defer cancel()

	detection, err := rt.manager.Detect(ctx, text, *provider)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detect failed: %v\n", err)
		return 1
	}

	printDetection(detection.Code, detection.Name)
	return 0
}

func printDetection(code, name string) {
	if name == "" {
		fmt.Println(code)
		return
	}
	fmt.Printf("%s  %s\n", code, name)
}

func printDetectUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  gtrans detect <text> [--offline] [--provider google] [--env .env] [--timeout 30s]")
}
