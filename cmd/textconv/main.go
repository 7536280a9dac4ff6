package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hengadev/textconv"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "builtins":
		return builtinsCommand(args[1:], stdout, stderr)
	case "normalize":
		return normalizeCommand(args[1:], stdout, stderr)
	case "validate":
		return validateCommand(args[1:], stdout, stderr)
	case "init":
		return initCommand(args[1:], stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, textconv.VersionInfo())
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: textconv <command> [options]\n")
	fmt.Fprintf(w, "\nCommands:\n")
	fmt.Fprintf(w, "  builtins   List the built-in converters\n")
	fmt.Fprintf(w, "  normalize  Parse values with a built-in converter and print their canonical text\n")
	fmt.Fprintf(w, "  validate   Validate a configuration\n")
	fmt.Fprintf(w, "  init       Write a default configuration file\n")
	fmt.Fprintf(w, "  version    Show version information\n")
	fmt.Fprintf(w, "\nRun 'textconv <command> -h' for help on a specific command.\n")
}

type configFlags struct {
	configPath *string
	envPath    *string
}

func addConfigFlags(fs *flag.FlagSet) configFlags {
	return configFlags{
		configPath: fs.String("config", "", "Path to a YAML configuration file"),
		envPath:    fs.String("env", "", "Path to a .env file"),
	}
}

// load reads the configuration from -env, then -config, then the process
// environment.
func (f configFlags) load() (textconv.Config, error) {
	switch {
	case *f.envPath != "":
		return textconv.LoadConfigFromEnvFile(*f.envPath)
	case *f.configPath != "":
		return textconv.LoadConfigFile(*f.configPath)
	default:
		return textconv.LoadConfigFromEnvironment()
	}
}

func builtinsCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("builtins", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cf := addConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := cf.load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	reg, err := textconv.New(textconv.WithConfig(cfg))
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create registry: %v\n", err)
		return 1
	}

	for _, name := range textconv.BuiltinNames() {
		typ, _ := textconv.BuiltinType(name)
		if _, ok := reg.Lookup(typ); !ok {
			continue
		}
		fmt.Fprintf(stdout, "%-12s %s\n", name, typ)
	}
	return 0
}

func normalizeCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("type", "", "Built-in converter name (see 'textconv builtins')")
	cf := addConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	typ, ok := textconv.BuiltinType(*name)
	if !ok {
		fmt.Fprintf(stderr, "Unknown built-in converter: %q\n", *name)
		return 1
	}

	cfg, err := cf.load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	reg, err := textconv.New(textconv.WithConfig(cfg))
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create registry: %v\n", err)
		return 1
	}

	failed := false
	for _, text := range fs.Args() {
		v, err := reg.ConvertFromString(typ, text)
		if err != nil {
			fmt.Fprintf(stderr, "✗ %s: %v\n", text, err)
			failed = true
			continue
		}
		s, err := reg.ConvertToString(v)
		if err != nil {
			fmt.Fprintf(stderr, "✗ %s: %v\n", text, err)
			failed = true
			continue
		}
		fmt.Fprintln(stdout, s)
	}

	if failed {
		return 1
	}
	return 0
}

func validateCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cf := addConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := cf.load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration validation failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "✓ Configuration is valid (time layout %q, %d built-ins disabled)\n",
		cfg.TimeLayout, len(cfg.DisabledBuiltins))
	return 0
}

func initCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("path", "textconv.yaml", "Configuration file to create")
	force := fs.Bool("force", false, "Overwrite existing configuration file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !*force {
		if _, err := os.Stat(*path); err == nil {
			fmt.Fprintf(stderr, "Configuration file %s already exists. Use -force to overwrite.\n", *path)
			return 1
		}
	}

	if err := textconv.SaveConfigFile(textconv.DefaultConfig(), *path); err != nil {
		fmt.Fprintf(stderr, "Failed to create config file: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Configuration file created at %s\n", *path)
	return 0
}
