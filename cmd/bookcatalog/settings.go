package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/maruel/bookcatalog/internal/config"
	flag "github.com/spf13/pflag"
)

// settings is the effective configuration after layering, from highest to
// lowest priority: flags, .env, $PORT, the config file and defaults.
type settings struct {
	version    bool
	devRestart bool
	configPath string
	server     *config.ServerConfig
}

// parseSettings parses args and layers the other sources under them.
//
// getenv reads the process environment and env holds the .env file content.
func parseSettings(args []string, getenv func(string) string, env map[string]string) (*settings, error) {
	flagSet := flag.NewFlagSet("bookcatalog", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	version := flagSet.Bool("version", false, "Print version and exit")
	httpAddr := flagSet.String("http", "", "Address to listen on (default \":$PORT\", or \":"+config.DefaultPort+"\")")
	logLevel := flagSet.String("log-level", "", "Log level (debug, info, warn, error)")
	seed := flagSet.String("seed", "", "YAML file with the books to start with")
	geoDB := flagSet.String("geo-db", "", "Path to MaxMind MMDB file for IP geolocation (optional)")
	configPath := flagSet.String("config", "", "HuJSON configuration file, created with defaults if missing")
	devRestart := flagSet.Bool("dev-restart", false, "Shut down when the executable is modified")
	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if flagSet.NArg() > 0 {
		return nil, fmt.Errorf("unknown arguments: %v", flagSet.Args())
	}
	s := &settings{version: *version, devRestart: *devRestart}
	if *version {
		return s, nil
	}

	s.configPath = pick(flagSet, "config", *configPath, env["CONFIG"])
	s.server = config.Default()
	if s.configPath != "" {
		cfg, err := config.Load(s.configPath)
		if err != nil {
			return nil, err
		}
		s.server = cfg
	}

	// $PORT only applies when nothing more specific names an address.
	fallbackAddr := s.server.HTTP
	if p := getenv("PORT"); p != "" {
		fallbackAddr = ":" + p
	}
	if p := env["PORT"]; p != "" {
		fallbackAddr = ":" + p
	}
	if fallbackAddr == "" {
		fallbackAddr = ":" + config.DefaultPort
	}
	s.server.HTTP = pick(flagSet, "http", *httpAddr, env["HTTP"], fallbackAddr)
	s.server.LogLevel = pick(flagSet, "log-level", *logLevel, env["LOG_LEVEL"], s.server.LogLevel)
	s.server.Seed = pick(flagSet, "seed", *seed, env["SEED"], s.server.Seed)
	s.server.GeoDB = pick(flagSet, "geo-db", *geoDB, env["GEO_DB"], s.server.GeoDB)
	if err := s.server.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// pick returns the flag value when the flag was set, else the first
// non-empty fallback.
func pick(flagSet *flag.FlagSet, name, value string, fallbacks ...string) string {
	if flagSet.Changed(name) {
		return value
	}
	for _, v := range fallbacks {
		if v != "" {
			return v
		}
	}
	return ""
}

// loadDotEnv reads KEY=VALUE lines from path. A missing file is not an error.
func loadDotEnv(path string) (map[string]string, error) {
	env := make(map[string]string)
	content, err := os.ReadFile(path) //nolint:gosec // G304: fixed file name in the working directory
	if err != nil {
		if os.IsNotExist(err) {
			return env, nil
		}
		return nil, err
	}
	for line := range strings.SplitSeq(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		val = strings.TrimSpace(val)
		if strings.HasPrefix(val, "'") || strings.HasSuffix(val, "'") {
			if len(val) >= 2 && strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
				val = val[1 : len(val)-1]
			} else {
				return nil, fmt.Errorf("unbalanced single quotes in %s: %s", path, line)
			}
		} else if strings.HasPrefix(val, "\"") {
			unquoted, err := strconv.Unquote(val)
			if err != nil {
				return nil, fmt.Errorf("failed to unquote %s in %s: %w", key, path, err)
			}
			val = unquoted
		}
		env[key] = val
	}
	return env, nil
}
