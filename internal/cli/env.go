package cli

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFileVar names the env var whose value wins over the --env flag.
const EnvFileVar = "GTRANS_ENV_FILE"

// EnvLoader resolves which .env file a command should load.
type EnvLoader struct {
	value       *string
	defaultPath string
}

// AddEnvFlag registers an --env flag on fs and returns its loader.
func AddEnvFlag(fs *flag.FlagSet, defaultPath, description string) *EnvLoader {
	if fs == nil {
		fs = flag.CommandLine
	}
	if defaultPath == "" {
		defaultPath = ".env"
	}
	if description == "" {
		description = "Path to the .env file"
	}

	return &EnvLoader{
		value:       fs.String("env", defaultPath, description),
		defaultPath: defaultPath,
	}
}

// Load overlays process env vars from the first file that loads, trying the
// EnvFileVar override, then the flag value, its basename, and the default
// path. Returns the path that loaded.
func (l *EnvLoader) Load() (string, error) {
	if l == nil {
		return "", fmt.Errorf("env loader is nil")
	}

	log.SetOutput(os.Stderr)

	if override := strings.TrimSpace(os.Getenv(EnvFileVar)); override != "" {
		if err := godotenv.Overload(override); err == nil {
			log.Printf("Loaded environment from %s: %s", EnvFileVar, override)
			return override, nil
		}
		log.Printf("Warning: failed to load %s=%s", EnvFileVar, override)
	}

	requested := l.defaultPath
	if l.value != nil && strings.TrimSpace(*l.value) != "" {
		requested = strings.TrimSpace(*l.value)
	}

	candidates := []string{requested}
	if base := filepath.Base(requested); base != requested {
		candidates = append(candidates, base)
	}
	if requested != l.defaultPath {
		candidates = append(candidates, l.defaultPath)
	}

	for _, path := range candidates {
		if err := godotenv.Overload(path); err == nil {
			log.Printf("Loaded environment from: %s", path)
			return path, nil
		}
	}

	return "", fmt.Errorf("failed to load env file from %s", requested)
}
