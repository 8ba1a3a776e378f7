package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// isTestMode checks if the program is running under go test
func isTestMode() bool {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return false
}

var opts = &options{
	Source:  "output",
	Timeout: duration(defaultTimeout),
	cfgFile: ".go-s3-sync.json",
	envFile: ".env",
}

var logger Logger

// processCmdLineFlags wraps the command line flags handling.
func processCmdLineFlags(opts *options) {
	flag.StringVar(&opts.BucketName, "bucket", opts.BucketName, "Bucket to upload files to")
	flag.StringVar(&opts.Source, "source", opts.Source, "Base folder the file keys are relative to")
	flag.StringVar(&opts.Region, "region", opts.Region, "AWS region (default $"+envRegion+" or "+defaultRegion+")")
	flag.StringVar(&opts.Endpoint, "endpoint", opts.Endpoint, "Custom S3 endpoint URL, for S3 compatible stores")
	flag.BoolVar(&opts.PathStyle, "path-style", opts.PathStyle, "Use path style bucket addressing")
	flag.StringVar(&opts.AccessKeyID, "access-key", opts.AccessKeyID, "AWS access key id (default $"+envAccessKeyID+")")
	flag.StringVar(&opts.SecretAccessKey, "secret-key", opts.SecretAccessKey, "AWS secret access key (default $"+envSecretAccessKey+")")
	flag.Var(&opts.Timeout, "timeout", "Timeout of each S3 request, 0 to disable")
	flag.StringVar(&opts.cfgFile, "cfgfile", opts.cfgFile, "Config file location")
	flag.StringVar(&opts.envFile, "envfile", opts.envFile, "Dotenv file with fallback environment variables")
	flag.BoolVar(&opts.dryRun, "dry", opts.dryRun, "Dry run (list and compare, do not upload)")
	flag.BoolVar(&opts.verbose, "verbose", opts.verbose, "Print the local, remote and upload inventories")
	flag.BoolVar(&opts.quiet, "quiet", opts.quiet, "Print only warnings and/or errors")
	flag.BoolVar(&opts.saveCfg, "save", opts.saveCfg, "Saves the current commandline options to a config file")
	flag.BoolVar(&opts.version, "version", opts.version, "Print version information and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [key ...]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
}

// validateCmdLineFlags validates some of the flags, mostly paths. Defers actual validation to validateCmdLineFlag()
func validateCmdLineFlags(opts *options) error {
	flags := map[string]string{
		"Source":  opts.Source,
		"Timeout": opts.Timeout.String(),
	}
	for label, val := range flags {
		if err := validateCmdLineFlag(label, val); err != nil {
			return err
		}
	}
	return nil
}

// validateCmdLineFlag handles the actual validation of flags.
func validateCmdLineFlag(label, val string) error {
	switch label {
	case "Source":
		if val == "" {
			return nil
		}
		info, err := os.Stat(val)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s %q is not a folder", label, val)
		}
	case "Timeout":
		if strings.HasPrefix(val, "-") {
			return fmt.Errorf("%s must not be negative", label)
		}
	}
	return nil
}

// newS3Client builds the S3 client for cfg. Explicit credentials win over the
// SDK's default chain. The SDK's own retries are disabled: a failed request
// fails the run.
func newS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
		config.WithRetryMaxAttempts(1),
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if _, err = awsCfg.Credentials.Retrieve(ctx); err != nil {
		return nil, fmt.Errorf("unable to initialize AWS credentials - please check environment: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	}), nil
}

func abort(code int, err error) {
	logger.Warn(err.Error())
	os.Exit(code)
}

func init() {
	// Skip full initialization in test mode - tests set up their own collaborators
	if isTestMode() {
		logger = loggerGen(false, false, io.Discard)
		return
	}

	logger = loggerGen(false, false)

	oldCfgFile := opts.cfgFile
	if err := opts.restore(opts.cfgFile); err != nil {
		abort(SetupFailed, err)
	}
	processCmdLineFlags(opts)

	if opts.version {
		fmt.Println(GetVersion())
		os.Exit(Success)
	}

	if opts.cfgFile != oldCfgFile { // we were given a different config file, use that instead.
		if err := opts.restore(opts.cfgFile); err != nil {
			abort(SetupFailed, err)
		}
	}
	if opts.saveCfg {
		if err := opts.dump(opts.cfgFile); err != nil {
			abort(SetupFailed, err)
		}
	}
	logger = loggerGen(opts.verbose, opts.quiet)
}
