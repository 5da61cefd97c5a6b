package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WDBCURL is the UCI download location of wdbc.data (569 rows).
const WDBCURL = "https://archive.ics.uci.edu/ml/machine-learning-databases/breast-cancer-wisconsin/wdbc.data"

// maxDownloadBytes bounds a dataset download; wdbc.data is about 125 KiB.
const maxDownloadBytes = 8 << 20

var defaultClient = &http.Client{Timeout: 60 * time.Second}

// Fetch downloads a wdbc-layout file from url and stores it at dest. The body
// must parse as a dataset before anything is written, so an error page never
// ends up cached as training data.
func Fetch(ctx context.Context, client *http.Client, url, dest string) error {
	if client == nil {
		client = defaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	if len(body) > maxDownloadBytes {
		return fmt.Errorf("download %s: larger than %d bytes", url, maxDownloadBytes)
	}
	first, _, _ := bytes.Cut(body, []byte("\n"))
	if !isWDBCRow(strings.Split(strings.TrimSpace(string(first)), ",")) {
		return fmt.Errorf("download %s: not in wdbc.data layout", url)
	}
	if _, err := ReadCSV(bytes.NewReader(body), WDBCColumns); err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	return writeAtomic(dest, body)
}

// Ensure downloads url to path unless path already exists. It reports
// whether a download happened.
func Ensure(ctx context.Context, client *http.Client, path, url string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := Fetch(ctx, client, url, path); err != nil {
		return false, err
	}
	return true, nil
}

func writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".dataset-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
