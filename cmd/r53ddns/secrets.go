package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Travis-Britz/r53ddns"
)

// readSecrets loads the credential pair from a JSON secrets file:
//
//	{
//	        "access_key" : "SOME_NON_SECRET",
//	        "secret_key" : "SOME_SECRET"
//	}
func readSecrets(path string) (ddns.Credentials, error) {
	if err := verifyPermissions(path); err != nil {
		return ddns.Credentials{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ddns.Credentials{}, fmt.Errorf("error reading secrets file: %w", err)
	}
	var creds ddns.Credentials
	if err := json.Unmarshal(b, &creds); err != nil {
		return ddns.Credentials{}, fmt.Errorf("error parsing secrets file %q: %w", path, err)
	}
	if creds.APIToken == "" && (creds.AccessKey == "" || creds.SecretKey == "") {
		return ddns.Credentials{}, fmt.Errorf("secrets file %q must set access_key and secret_key", path)
	}
	return creds, nil
}

// writeSecrets creates a new secrets file readable only by its owner.
// An existing file is never overwritten.
func writeSecrets(path string, creds ddns.Credentials) error {
	b, err := json.MarshalIndent(creds, "", "    ")
	if err != nil {
		return fmt.Errorf("error encoding secrets: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("unable to create %q: %w", path, err)
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("error writing %q: %w", path, err)
	}
	return f.Close()
}

func verifyPermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error checking secrets file permissions: %w", err)
	}

	perms := info.Mode().Perm()
	// Error messages will state that we want 0600,
	// but we'll also accept 0400 which is even more restricted.
	// The file might be provided by some secrets managing software as readonly.
	if perms != 0600 && perms != 0400 {
		return fmt.Errorf("invalid permissions for %q: %w", path, permissionError(perms))
	}
	return nil
}

type permissionError fs.FileMode

func (pe permissionError) Error() string {
	return fmt.Sprintf("expected file permissions \"-rw-------\"; found \"%s\"", fs.FileMode(pe))
}

var errPermissions = errors.New("secrets file is readable by other users")

func (pe permissionError) Unwrap() error { return errPermissions }
