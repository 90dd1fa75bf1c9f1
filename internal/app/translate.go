package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chrk623/google-trans2/internal/cli"
	"github.com/chrk623/google-trans2/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	from := fs.String("from", "", "Source language code (empty means auto)")
	to := fs.String("to", "", "Target language code (ISO 639-1, for example: es, zh-cn)")
	pronounce := fs.Bool("pronounce", false, "Include pronunciations when the backend offers them")
	provider := fs.String("provider", "", "Translation provider name (for example: google, gtx)")
	verify := fs.Bool("verify", false, "Check that the result reads as the target language")
	force := fs.Bool("force", false, "Translate even when a cached result exists")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "translate requires one text argument")
		printTranslateUsage()
		return 2
	}

	targetLang := strings.TrimSpace(*to)
	if targetLang == "" {
		fmt.Fprintln(os.Stderr, "--to is required")
		printTranslateUsage()
		return 2
	}
	text := strings.TrimSpace(fs.Arg(0))
	if text == "" {
		fmt.Fprintln(os.Stderr, "translate argument must not be empty")
		return 2
	}

	rt, err := setupRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := commandContext(*timeout)
	defer cancel()

	result, err := rt.manager.Translate(ctx, translation.TranslateRequest{
		Text:       text,
		SourceLang: *from,
		TargetLang: targetLang,
		Pronounce:  *pronounce,
	}, translation.RunOptions{
		Provider: *provider,
		Force:    *force,
		Verify:   *verify || rt.cfg.VerifyTranslations,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translate failed: %v\n", err)
		return 1
	}

	if len(result.Candidates) > 0 {
		for _, candidate := range result.Candidates {
			fmt.Println(candidate)
		}
	} else {
		fmt.Println(strings.TrimSpace(result.Text))
	}
	if pron := pointerStringOrEmpty(result.SourcePronunciation); pron != "" {
		fmt.Printf("source pronunciation: %s\n", pron)
	}
	if pron := pointerStringOrEmpty(result.TargetPronunciation); pron != "" {
		fmt.Printf("target pronunciation: %s\n", pron)
	}
	return 0
}

func printTranslateUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  gtrans translate <text> --to <lang> [--from auto] [--pronounce] [--provider google] [--verify] [--force] [--env .env] [--timeout 30s]")
}
