/*
Copyright © 2026 The Fob Authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package runtime

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
)

// ErrNotFound is returned when a resolved URL responds 404, which the
// caller should treat as "module does not exist" rather than a transport
// failure; other 4xx/5xx statuses give a plain http error instead.
var ErrNotFound = errors.New("fetchruntime: resource not found")

// FetchRuntime implements Runtime over one or more base URLs (CDN mirrors
// of a package registry), backed by an RFC 7234 compliant disk cache so
// repeated resolves of the same bare specifier don't re-hit the network.
type FetchRuntime struct {
	client  *http.Client
	bases   []string // tried in order, first 2xx wins
	cwd     string

	mu    sync.RWMutex
	cache map[string][]byte // in-process read cache layered on top of disk cache
}

// NewFetchRuntime creates a FetchRuntime that resolves paths against bases
// in order, caching responses under the user's XDG cache directory.
func NewFetchRuntime(bases []string) *FetchRuntime {
	cacheDir := xdg.CacheHome + "/fob/fetch"
	transport := httpcache.NewTransport(diskcache.New(cacheDir))
	return &FetchRuntime{
		client: transport.Client(),
		bases:  bases,
		cwd:    "/",
		cache:  make(map[string][]byte),
	}
}

func (r *FetchRuntime) ReadFile(p string) ([]byte, error) {
	r.mu.RLock()
	if data, ok := r.cache[p]; ok {
		r.mu.RUnlock()
		return data, nil
	}
	r.mu.RUnlock()

	var lastErr error
	for _, base := range r.bases {
		url := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
		data, err := r.get(url)
		if err == nil {
			r.mu.Lock()
			r.cache[p] = data
			r.mu.Unlock()
			return data, nil
		}
		if errors.Is(err, ErrNotFound) {
			lastErr = err
			continue
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = ErrNotFound
	}
	return nil, fmt.Errorf("fetchruntime: %s: %w", p, lastErr)
}

func (r *FetchRuntime) get(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (r *FetchRuntime) WriteFile(string, []byte, fs.FileMode) error {
	return fmt.Errorf("fetchruntime: write not supported on a fetch-backed runtime")
}

func (r *FetchRuntime) Metadata(p string) (fs.FileInfo, error) {
	data, err := r.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return fetchFileInfo{name: path.Base(p), size: int64(len(data))}, nil
}

func (r *FetchRuntime) Exists(p string) bool {
	_, err := r.ReadFile(p)
	return err == nil
}

func (r *FetchRuntime) Resolve(p string) (string, error) {
	if path.IsAbs(p) {
		return path.Clean(p), nil
	}
	return path.Clean(path.Join(r.cwd, p)), nil
}

func (r *FetchRuntime) ReadDir(string) ([]fs.DirEntry, error) {
	return nil, fmt.Errorf("fetchruntime: directory listing not supported; registries are addressed by exact path")
}

func (r *FetchRuntime) CreateDir(string, fs.FileMode) error {
	return fmt.Errorf("fetchruntime: write not supported on a fetch-backed runtime")
}

func (r *FetchRuntime) Cwd() (string, error) {
	return r.cwd, nil
}

type fetchFileInfo struct {
	name string
	size int64
}

func (i fetchFileInfo) Name() string       { return i.name }
func (i fetchFileInfo) Size() int64        { return i.size }
func (i fetchFileInfo) Mode() fs.FileMode  { return 0444 }
func (i fetchFileInfo) ModTime() time.Time { return time.Time{} }
func (i fetchFileInfo) IsDir() bool        { return false }
func (i fetchFileInfo) Sys() any           { return nil }
