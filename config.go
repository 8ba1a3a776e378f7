package main

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultRegion is used when neither the options nor the environment name a region.
const defaultRegion = "ap-northeast-1"

const defaultTimeout = 5 * time.Minute

// Environment variables consulted as fallbacks for unset options.
const (
	envAccessKeyID     = "AWS_ACCESS_KEY_ID"
	envSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	envRegion          = "AWS_REGION"
	envBucket          = "S3_SYNC_BUCKET"
	envEndpoint        = "S3_SYNC_ENDPOINT"
)

// Config is the fully resolved, read-only configuration of one run.
type Config struct {
	BucketName      string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Endpoint        string
	PathStyle       bool
	Timeout         time.Duration
	DryRun          bool
}

// resolveConfig merges explicit options over the environment snapshot.
// It has no side effects.
func resolveConfig(o *options, env map[string]string) (Config, error) {
	cfg := Config{
		BucketName:      firstNonEmpty(o.BucketName, env[envBucket]),
		AccessKeyID:     firstNonEmpty(o.AccessKeyID, env[envAccessKeyID]),
		SecretAccessKey: firstNonEmpty(o.SecretAccessKey, env[envSecretAccessKey]),
		Region:          firstNonEmpty(o.Region, env[envRegion], defaultRegion),
		Endpoint:        firstNonEmpty(o.Endpoint, env[envEndpoint]),
		PathStyle:       o.PathStyle,
		Timeout:         time.Duration(o.Timeout),
		DryRun:          o.dryRun,
	}

	if cfg.BucketName == "" {
		return Config{}, ErrMissingBucket
	}

	return cfg, nil
}

// envSnapshot returns the process environment layered over the values of the
// given dotenv files. Missing dotenv files are ignored.
func envSnapshot(envFiles ...string) map[string]string {
	env := map[string]string{}
	for _, fname := range envFiles {
		if fname == "" {
			continue
		}
		vals, err := godotenv.Read(fname)
		if err != nil {
			continue
		}
		for k, v := range vals {
			env[k] = v
		}
	}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		// an empty variable does not hide a dotenv value.
		if _, set := env[k]; !set || v != "" {
			env[k] = v
		}
	}

	return env
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
