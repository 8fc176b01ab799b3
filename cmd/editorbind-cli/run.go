package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-editorbind/internal/logging"
	"github.com/goliatone/go-editorbind/pkg/binder"
	"github.com/goliatone/go-editorbind/pkg/enhancer"
	"github.com/goliatone/go-editorbind/pkg/prompt"
)

type environment struct {
	fields   string
	logLevel string
}

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

type options struct {
	input         string
	output        string
	fields        string
	widget        string
	themeManifest string
	themeVariant  string
	pick          bool
	logLevel      string
	logFile       string
}

func parseFlags(args []string, env environment, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("editorbind-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.input, "input", "-", "HTML page to enhance (- reads stdin)")
	fs.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&opts.fields, "fields", env.fields, "YAML/JSON file with field descriptor overrides")
	fs.StringVar(&opts.widget, "widget", "", "editor widget name (default codemirror)")
	fs.StringVar(&opts.themeManifest, "theme-manifest", "", "YAML/JSON theme manifest")
	fs.StringVar(&opts.themeVariant, "theme-variant", "", "theme variant to select")
	fs.BoolVar(&opts.pick, "pick", false, "choose interactively which fields to enhance")
	fs.StringVar(&opts.logLevel, "log-level", firstNonEmpty(env.logLevel, "info"), "debug, info, warn or error")
	fs.StringVar(&opts.logFile, "log-file", "", "also write JSON logs to this file")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

func run(ctx context.Context, args []string, env environment, std streams, driver prompt.Driver) error {
	opts, err := parseFlags(args, env, std.err)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:    opts.logLevel,
		Terminal: std.err,
		File:     opts.logFile,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	enhancerOpts := []enhancer.Option{enhancer.WithLogger(logger)}
	if opts.fields != "" {
		overrides, err := binder.LoadFile(opts.fields)
		if err != nil {
			return err
		}
		enhancerOpts = append(enhancerOpts, enhancer.WithDescriptors(binder.Merge(binder.DefaultDescriptors(), overrides)))
	}
	if opts.themeManifest != "" {
		manifest, err := loadManifest(opts.themeManifest)
		if err != nil {
			return err
		}
		enhancerOpts = append(enhancerOpts, enhancer.WithThemeSelector(enhancer.StaticTheme(manifest), manifest.Name, opts.themeVariant))
	}

	enh, err := enhancer.New(enhancerOpts...)
	if err != nil {
		return err
	}

	page, err := readInput(opts.input, std.in)
	if err != nil {
		return err
	}

	req := enhancer.Request{Page: page, Widget: opts.widget}
	if opts.pick {
		if opts.output != "" {
			if _, err := os.Stat(opts.output); err == nil {
				if err := prompt.ConfirmOverwrite(ctx, driver, opts.output); err != nil {
					return err
				}
			}
		}
		present, err := enh.Present(page)
		if err != nil {
			return err
		}
		picked, err := prompt.PickFields(ctx, driver, present)
		if err != nil {
			return err
		}
		if len(picked) == 0 {
			logger.InfoContext(ctx, "no fields selected, page left unchanged")
			return writeOutput(opts.output, std.out, page)
		}
		req.Only = picked
	}

	result, err := enh.Enhance(ctx, req)
	if err != nil && len(result.HTML) == 0 {
		return err
	}
	if err != nil {
		logger.WarnContext(ctx, "some fields were not enhanced", "error", err)
	}
	logger.InfoContext(ctx, "page enhanced", "bound", strings.Join(result.Bound, ","))
	return writeOutput(opts.output, std.out, result.HTML)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// manifestFile is the on-disk shape of a theme manifest.
type manifestFile struct {
	Name     string                 `json:"name" yaml:"name"`
	Version  string                 `json:"version" yaml:"version"`
	Tokens   map[string]string      `json:"tokens" yaml:"tokens"`
	Assets   assetsFile             `json:"assets" yaml:"assets"`
	Variants map[string]variantFile `json:"variants" yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `json:"prefix" yaml:"prefix"`
	Files  map[string]string `json:"files" yaml:"files"`
}

type variantFile struct {
	Tokens map[string]string `json:"tokens" yaml:"tokens"`
	Assets assetsFile        `json:"assets" yaml:"assets"`
}

func loadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme manifest: %w", err)
	}
	var file manifestFile
	if jsonErr := json.Unmarshal(data, &file); jsonErr != nil {
		file = manifestFile{}
		if yamlErr := yaml.Unmarshal(data, &file); yamlErr != nil {
			return nil, fmt.Errorf("parse theme manifest %s: %w", path, errors.Join(jsonErr, yamlErr))
		}
	}
	if strings.TrimSpace(file.Name) == "" {
		return nil, fmt.Errorf("theme manifest %s: name is required", path)
	}

	manifest := &theme.Manifest{
		Name:    file.Name,
		Version: file.Version,
		Tokens:  file.Tokens,
		Assets: theme.Assets{
			Prefix: file.Assets.Prefix,
			Files:  file.Assets.Files,
		},
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, variant := range file.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens: variant.Tokens,
				Assets: theme.Assets{
					Prefix: variant.Assets.Prefix,
					Files:  variant.Assets.Files,
				},
			}
		}
	}
	return manifest, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
