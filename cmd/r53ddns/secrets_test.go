package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Travis-Britz/r53ddns"
)

func TestReadSecrets(t *testing.T) {
	creds, err := readSecrets(secretsFile(t))
	if err != nil {
		t.Fatalf("readSecrets failed: %s", err)
	}
	if creds.AccessKey != "AK" || creds.SecretKey != "SK" {
		t.Fatalf("Expected AK/SK; got %+v", creds)
	}
}

func TestReadSecretsReadOnly(t *testing.T) {
	path := writeFile(t, "r53_secrets", `{"api_token":"token"}`, 0400)
	creds, err := readSecrets(path)
	if err != nil {
		t.Fatalf("readSecrets failed: %s", err)
	}
	if creds.APIToken != "token" {
		t.Fatalf("Expected the api token; got %+v", creds)
	}
}

func TestReadSecretsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		perm    os.FileMode
	}{
		{"world readable", `{"access_key":"AK","secret_key":"SK"}`, 0644},
		{"not json", `access_key=AK`, 0600},
		{"missing secret", `{"access_key":"AK"}`, 0600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := readSecrets(writeFile(t, "r53_secrets", tt.content, tt.perm)); err == nil {
				t.Fatalf("Expected an error; got err == nil")
			}
		})
	}

	if _, err := readSecrets(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("Expected an error for a missing file")
	}
}

func TestVerifyPermissions(t *testing.T) {
	err := verifyPermissions(writeFile(t, "r53_secrets", "{}", 0640))
	if !errors.Is(err, errPermissions) {
		t.Fatalf("Expected errPermissions; got %v", err)
	}
	var pe permissionError
	if !errors.As(err, &pe) || os.FileMode(pe) != 0640 {
		t.Fatalf("Expected a permissionError for 0640; got %v", err)
	}
}

func TestWriteSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r53_secrets")
	if err := writeSecrets(path, ddns.Credentials{AccessKey: "AK", SecretKey: "SK"}); err != nil {
		t.Fatalf("writeSecrets failed: %s", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %s", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("Expected 0600; got %s", perm)
	}
	b, _ := os.ReadFile(path)
	var got map[string]string
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("error parsing written file: %s", err)
	}
	if got["access_key"] != "AK" || got["secret_key"] != "SK" {
		t.Fatalf("Expected AK/SK; got %v", got)
	}
	if _, ok := got["api_token"]; ok {
		t.Fatalf("Expected no api_token key; got %v", got)
	}

	if err := writeSecrets(path, ddns.Credentials{AccessKey: "X", SecretKey: "Y"}); err == nil {
		t.Fatalf("Expected an existing file to be left alone")
	}
}
