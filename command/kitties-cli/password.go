// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/bitmark-inc/kittiesd/fault"
)

const minimumPasswordLength = 8

func readPassword(prompt string) (string, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if nil != err {
		return "", fmt.Errorf("no console: %s", err)
	}
	defer tty.Close()

	fmt.Fprintf(tty, "kitties-cli: %s", prompt)
	password, err := term.ReadPassword(int(tty.Fd()))
	fmt.Fprintf(tty, "\n")
	if nil != err {
		return "", err
	}
	return string(password), nil
}

// prompt twice for a new password
func promptNewPassword() (string, error) {
	password, err := readPassword("Set identity password (length >= 8): ")
	if nil != err {
		return "", err
	}
	if err := checkPasswordLength(password); nil != err {
		return "", err
	}

	verifyPassword, err := readPassword("Verify password: ")
	if nil != err {
		return "", err
	}
	if password != verifyPassword {
		return "", fault.ErrVerifiedPassword
	}
	return password, nil
}

func promptPassword() (string, error) {
	return readPassword("password: ")
}

func checkPasswordLength(password string) error {
	if len(password) < minimumPasswordLength {
		return fault.ErrInvalidPasswordLength
	}
	return nil
}
