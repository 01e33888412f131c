package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/genfn/genfn"
	"github.com/genfn/genfn/config"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to source file with fn* items")
		outFile     = flag.String("out", "", "Output file (default: stdout)")
		pkgName     = flag.String("pkg", "", "Emitted package name")
		configFile  = flag.String("config", "", "Path to a .genfn.toml config file")
		list        = flag.Bool("list", false, "List recognized definitions and exit")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive playground with TUI")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: genfn -in <file> [-out file.go] [-pkg name] [-config .genfn.toml]")
		fmt.Fprintln(os.Stderr, "       genfn -in <file> -list")
		fmt.Fprintln(os.Stderr, "       genfn -in <file> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*inFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*inFile, *outFile, *pkgName, *configFile, *list, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inFile, outFile, pkgName, configFile string, listOnly, verbose bool) error {
	cfg, err := loadConfig(inFile, configFile)
	if err != nil {
		return err
	}
	if pkgName != "" {
		cfg.Package = pkgName
	}

	if verbose || cfg.Verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		genfn.SetLogger(logger)
	}

	data, err := os.ReadFile(inFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	source := string(data)

	opts := genfn.Options{
		Package:    cfg.Package,
		CoroImport: cfg.CoroImport,
		SelfRef:    cfg.SelfRef,
	}

	if listOnly {
		defs, err := genfn.Parse(source, opts)
		if err != nil {
			reportDiagnostics(inFile, source, err)
			return fmt.Errorf("expansion failed")
		}
		fmt.Printf("Definitions in %s:\n", inFile)
		for _, def := range defs {
			var params []string
			for _, p := range def.Params {
				params = append(params, p.Name+" "+p.Type.Text)
			}
			fmt.Printf("  fn* %s(%s) yields %s\n", def.Name, strings.Join(params, ", "), def.YieldType.Text)
		}
		return nil
	}

	out, err := genfn.Expand(source, opts)
	if err != nil {
		reportDiagnostics(inFile, source, err)
		return fmt.Errorf("expansion failed")
	}

	if outFile == "" {
		os.Stdout.Write(out)
		return nil
	}
	if err := os.WriteFile(outFile, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// loadConfig reads the named config file, or the .genfn.toml next to the
// input when none is named. The defaults apply when neither exists.
func loadConfig(inFile, configFile string) (config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	implicit := filepath.Join(filepath.Dir(inFile), config.DefaultFile)
	if _, err := os.Stat(implicit); err == nil {
		return config.Load(implicit)
	}
	return config.Default(), nil
}
