// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/kittiesd/fault"
)

// EnsureAbsolute - join a relative path onto directory
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// DataDirectory - resolve the data directory setting
//
// "." is the directory holding the configuration file, the result must
// be an existing directory
func DataDirectory(configurationFile string, setting string) (string, error) {
	var dir string
	switch setting {
	case "", "~":
		return "", fault.ErrConfigurationDirectory
	case ".":
		dir, _ = filepath.Split(configurationFile)
	default:
		dir = filepath.Clean(setting)
	}

	fileInfo, err := os.Stat(dir)
	if nil != err {
		return "", err
	}
	if !fileInfo.IsDir() {
		return "", fault.ErrConfigurationDirectory
	}
	return filepath.Clean(dir), nil
}

// PlainName - prefix directory onto a bare file name
func PlainName(directory string, name string) (string, error) {
	switch filepath.Dir(name) {
	case "", ".":
		return EnsureAbsolute(directory, name), nil
	default:
		return "", fault.ErrConfigurationPlainName
	}
}
