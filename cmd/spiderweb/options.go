package main

import (
	"fmt"

	"github.com/jonathan/spiderweb/internal/config"
	"github.com/jonathan/spiderweb/internal/rendering"
	"github.com/spf13/cobra"
)

// runFlags are the options shared by run and score
type runFlags struct {
	configPath     string
	outDir         string
	renderer       string
	template       string
	summary        string
	logFile        string
	browserTimeout int
	verifyPages    bool
	verbose        bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	// Config file flag (processed first)
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	cmd.Flags().StringVarP(&f.outDir, "out-dir", "o", "", "Directory for the PDF report (default \".\", or "+config.EnvOutDir+")")
	cmd.Flags().StringVarP(&f.renderer, "renderer", "r", "", fmt.Sprintf("Report backend, one of %v (default \"pdf\", or %s)", rendering.Renderers, config.EnvRenderer))
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "Template override for the latex and browser renderers")
	cmd.Flags().StringVar(&f.summary, "summary", "", "Also write the assessment as .json or .yaml to this path")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "Also write JSON logs to this rotated file (or "+config.EnvLogFile+")")
	cmd.Flags().IntVar(&f.browserTimeout, "browser-timeout", 0, "Seconds allowed for headless Chrome printing (default 60)")
	cmd.Flags().BoolVar(&f.verifyPages, "verify-pages", false, "Fail unless the written report has exactly two pages")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed debug information")
}

// resolve layers config file values, explicitly set flags and defaults
func (f *runFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if f.configPath != "" {
		loadedCfg, err := config.LoadConfig(f.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("out-dir") {
		cfg.OutDir = f.outDir
	}
	if flags.Changed("renderer") {
		cfg.Renderer = f.renderer
	}
	if flags.Changed("template") {
		cfg.Template = f.template
	}
	if flags.Changed("summary") {
		cfg.Summary = f.summary
	}
	if flags.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if flags.Changed("browser-timeout") {
		cfg.BrowserTimeout = f.browserTimeout
	}
	if flags.Changed("verify-pages") {
		cfg.VerifyPages = f.verifyPages
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Defaults())

	// Step 4: Validate the merged configuration
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}
