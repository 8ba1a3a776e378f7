package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type options struct {
	BucketName      string      `json:"bucket_name,omitempty"`
	Source          string      `json:"source,omitempty"`
	Region          string      `json:"region,omitempty"`
	Endpoint        string      `json:"endpoint,omitempty"`
	AccessKeyID     string      `json:"access_key_id,omitempty"`
	SecretAccessKey string      `json:"secret_access_key,omitempty"`
	Timeout         duration    `json:"timeout,omitempty"`
	PathStyle       bool        `json:"path_style,omitempty"`
	Files           []fileGroup `json:"files,omitempty"`
	cfgFile         string
	envFile         string

	dryRun, verbose, quiet,
	saveCfg, version bool
}

// duration is a time.Duration that reads and writes as a string ("90s") in JSON.
type duration time.Duration

func (d duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

func (d *duration) String() string { return time.Duration(*d).String() }

func (d *duration) Set(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

func (o *options) dump(fname string) (err error) {
	f, err := os.Create(fname) // #nosec G304 - file path from user config is expected
	if err != nil {
		return err
	}
	defer func() {
		err2 := f.Close()
		if err == nil {
			err = err2
		} else if err2 != nil {
			err = fmt.Errorf("%w; %w", err, err2)
		}
	}()

	// credentials never go to disk.
	tmp := *o
	tmp.AccessKeyID, tmp.SecretAccessKey = "", ""

	buf, err := json.MarshalIndent(&tmp, "", "  ")
	if err != nil {
		return err
	}
	buf = append(buf, "\n"[0])

	_, err = f.Write(buf)

	return err
}

func (o *options) restore(fname string) (err error) {
	f, err := os.Open(fname) // #nosec G304 - file path from user config is expected
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer func() {
		if err2 := f.Close(); err2 != nil && err == nil {
			err = err2
		}
	}()

	tmp := options{}
	dec := json.NewDecoder(f)
	if err = dec.Decode(&tmp); err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}

	o.merge(&tmp)

	return nil
}

func (o *options) merge(other *options) {
	if x := other.BucketName; x != "" {
		o.BucketName = x
	}
	if x := other.Source; x != "" {
		o.Source = x
	}
	if x := other.Region; x != "" {
		o.Region = x
	}
	if x := other.Endpoint; x != "" {
		o.Endpoint = x
	}
	if x := other.AccessKeyID; x != "" {
		o.AccessKeyID = x
	}
	if x := other.SecretAccessKey; x != "" {
		o.SecretAccessKey = x
	}
	if x := other.Timeout; x != 0 {
		o.Timeout = x
	}
	if x := other.PathStyle; x {
		o.PathStyle = x
	}
	if x := other.Files; len(x) > 0 {
		o.Files = x
	}

	// skipping the rest of the fields, they can never come from an unmarshalled file anyway.
}

// fileGroups turns the positional keys and the configured groups into the
// selection handed to the pipeline. With neither, the whole source folder is selected.
func (o *options) fileGroups(keys []string) []fileGroup {
	var groups []fileGroup
	if len(keys) > 0 || len(o.Files) == 0 {
		groups = append(groups, fileGroup{Cwd: o.Source, Src: keys})
	}
	return append(groups, o.Files...)
}
