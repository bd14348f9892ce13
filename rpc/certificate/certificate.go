// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package certificate - TLS configuration from PEM files
package certificate

import (
	"crypto/tls"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/kittiesd/fault"
)

// Fingerprint - SHA3-256 of the DER certificate
type Fingerprint [32]byte

// Get - verify that a set of listener parameters are valid
// and return the certificate
func Get(log *logger.L, name string, certificate string, key string) (*tls.Config, Fingerprint, error) {
	var fin Fingerprint

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if nil != err {
		log.Errorf("%s failed to load keypair: %s", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	fin = fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// GetFiles - as Get but reading the PEM data from files
func GetFiles(log *logger.L, name string, certificateFile string, keyFile string) (*tls.Config, Fingerprint, error) {
	certificate, err := os.ReadFile(certificateFile)
	if nil != err {
		log.Errorf("%s certificate: %q  error: %s", name, certificateFile, err)
		return nil, Fingerprint{}, err
	}
	key, err := os.ReadFile(keyFile)
	if nil != err {
		log.Errorf("%s private key: %q  error: %s", name, keyFile, err)
		return nil, Fingerprint{}, err
	}
	return Get(log, name, string(certificate), string(key))
}

// compute the fingerprint of a certificate
//
// openssl x509 -outform DER -in kittiesd-rpc.crt | sha3sum -a 256
func fingerprint(certificate []byte) Fingerprint {
	return sha3.Sum256(certificate)
}

// MakeSelfSigned - create a self-signed certificate and key file pair
func MakeSelfSigned(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) error {
	cert, key, err := NewPair(name, override, extraHosts)
	if nil != err {
		return err
	}

	if fileExists(certificateFileName) {
		return fault.ErrCertificateFileAlreadyExists
	}
	if fileExists(privateKeyFileName) {
		return fault.ErrKeyFileAlreadyExists
	}

	if err = os.WriteFile(certificateFileName, cert, 0666); nil != err {
		return err
	}
	if err = os.WriteFile(privateKeyFileName, key, 0600); nil != err {
		os.Remove(certificateFileName)
		return err
	}
	return nil
}

// NewPair - PEM encoded self-signed certificate and key
func NewPair(name string, override bool, extraHosts []string) ([]byte, []byte, error) {
	org := "kittiesd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	return certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
