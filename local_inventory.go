package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// fileGroup is one file selection: keys relative to an optional base directory.
// A group with a base directory and no keys selects every file under it.
type fileGroup struct {
	Cwd string   `json:"cwd,omitempty"`
	Src []string `json:"src,omitempty"`
}

// localFile is a selected local file, keyed by its remote object name.
type localFile struct {
	Key    string
	Path   string
	Digest string
}

// buildLocalInventory flattens the groups, drops entries that are not regular
// files (with a warning) and attaches md5 digests. Input order is preserved.
func buildLocalInventory(groups []fileGroup, log Logger) ([]localFile, error) {
	candidates, err := flattenGroups(groups)
	if err != nil {
		return nil, err
	}

	files := make([]localFile, 0, len(candidates))
	for _, c := range candidates {
		if !isFile(c.Path) {
			log.Warn(fmt.Sprintf("Path %q is not file.", c.Path))
			continue
		}

		digest, err := digestFile(c.Path)
		if err != nil {
			return nil, err
		}
		c.Digest = digest
		files = append(files, c)
	}

	return files, nil
}

// flattenGroups resolves every group into (key, path) pairs.
func flattenGroups(groups []fileGroup) ([]localFile, error) {
	var out []localFile
	for _, g := range groups {
		keys := g.Src
		if len(keys) == 0 && g.Cwd != "" {
			walked, err := walkKeys(g.Cwd)
			if err != nil {
				return nil, err
			}
			keys = walked
		}

		for _, key := range keys {
			path := key
			if g.Cwd != "" {
				path = filepath.Join(g.Cwd, key)
			}
			out = append(out, localFile{Key: key, Path: path})
		}
	}

	return out, nil
}

// walkKeys lists every regular file under dir as slash separated keys relative to dir.
// Dot files and dot folders (.env, .git, the config file) are never selected.
func walkKeys(dir string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, newPathError("walk", dir, err)
	}

	return keys, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
