package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/fleetpick/internal/app"
	"github.com/atomicstack/fleetpick/internal/format/output"
	"github.com/atomicstack/fleetpick/internal/option"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envOptions      = "FLEETPICK_OPTIONS"
	envWidth        = "FLEETPICK_WIDTH"
	envHeight       = "FLEETPICK_HEIGHT"
	envShowFooter   = "FLEETPICK_FOOTER"
	envVerbose      = "FLEETPICK_VERBOSE"
	envTrace        = "FLEETPICK_TRACE"
	envLogFile      = "FLEETPICK_LOG_FILE"
	envOutput       = "FLEETPICK_OUTPUT"
	envClipboard    = "FLEETPICK_CLIPBOARD"
	envWatch        = "FLEETPICK_WATCH"
	envMaxDisplayed = "FLEETPICK_MAX_DISPLAYED"
	envFocus        = "FLEETPICK_FOCUS"
	envNoBlink      = "FLEETPICK_NO_BLINK"
)

var errNoOptions = errors.New("an options file is required (-options or first argument)")

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("fleetpick", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	options := fs.String("options", envOrDefault(env, envOptions, ""), optionsUsage())
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show status messages after actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	format := fs.String("output", envOrDefault(env, envOutput, string(output.FormatTable)), "submission output format: table, json or yaml")
	clip := fs.Bool("clipboard", envOrBool(env, envClipboard, false), "also copy the submission to the clipboard")
	watch := fs.Bool("watch", envOrBool(env, envWatch, false), "reload the options file when it changes")
	watchInterval := fs.Duration("watch-interval", 2*time.Second, "modification time poll interval used alongside file notifications")
	maxDisplayed := fs.Int("max-displayed", envOrInt(env, envMaxDisplayed, 0), "rows shown in an open list (0 uses the default)")
	focus := fs.String("focus", envOrDefault(env, envFocus, ""), "id of the field focused at start")
	noBlink := fs.Bool("no-blink", envOrBool(env, envNoBlink, false), "disable caret blinking")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if *options == "" && fs.NArg() > 0 {
		*options = fs.Arg(0)
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *maxDisplayed < 0 {
		return Config{}, fmt.Errorf("max-displayed must be >= 0 (got %d)", *maxDisplayed)
	}

	cfg := Config{
		App: app.Config{
			OptionsPath:   *options,
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			Verbose:       *verbose,
			Output:        *format,
			Clipboard:     *clip,
			Watch:         *watch,
			WatchInterval: *watchInterval,
			MaxDisplayed:  *maxDisplayed,
			Focus:         *focus,
			NoBlink:       *noBlink,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"options":       *options,
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"footer":        strconv.FormatBool(*footer),
			"trace":         strconv.FormatBool(*trace),
			"verbose":       strconv.FormatBool(*verbose),
			"logFile":       *logFile,
			"output":        *format,
			"clipboard":     strconv.FormatBool(*clip),
			"watch":         strconv.FormatBool(*watch),
			"watchInterval": watchInterval.String(),
			"maxDisplayed":  strconv.Itoa(*maxDisplayed),
			"focus":         *focus,
			"noBlink":       strconv.FormatBool(*noBlink),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func optionsUsage() string {
	return "path to the option dataset (" + strings.Join(option.Extensions(), ", ") + ")"
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.OptionsPath) == "" {
		return errNoOptions
	}
	if _, err := output.ParseFormat(cfg.App.Output); err != nil {
		return err
	}
	if cfg.App.Watch && cfg.App.WatchInterval < 0 {
		return fmt.Errorf("watch-interval must be >= 0 (got %s)", cfg.App.WatchInterval)
	}
	return nil
}
