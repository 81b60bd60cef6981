package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
)

// fileItem is one key of a file store document.
type fileItem struct {
	Revision string `yaml:"revision"`
	Data     string `yaml:"data"`
}

// File is a KV kept in a single YAML file. Writes go through a temporary
// file and a rename, so readers never see a partial document. Revisions
// guard against writers in other processes; the mutex only orders writers
// in this one.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file store at path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

func (f *File) read() (map[string]fileItem, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]fileItem{}, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", f.path, err)
	}
	items := map[string]fileItem{}
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, errors.WrapParse("yaml", f.path, err)
	}
	if items == nil {
		items = map[string]fileItem{}
	}
	return items, nil
}

func (f *File) write(items map[string]fileItem) error {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	doc := make(yaml.MapSlice, 0, len(keys))
	for _, k := range keys {
		doc = append(doc, yaml.MapItem{Key: k, Value: items[k]})
	}
	data, err := yaml.MarshalWithOptions(doc, yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return errors.WrapParse("yaml", f.path, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".pagetree-*")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.WrapIO("write", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.WrapIO("rename", f.path, err)
	}
	return nil
}

// Get implements KV.
func (f *File) Get(_ context.Context, key string) (Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.read()
	if err != nil {
		return Item{}, err
	}
	item, ok := items[key]
	if !ok {
		return Item{}, errors.NewNotFoundError("key", key)
	}
	return Item{Data: []byte(item.Data), Revision: item.Revision}, nil
}

// Put implements KV.
func (f *File) Put(_ context.Context, key string, data []byte, revision string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.read()
	if err != nil {
		return "", err
	}
	if current := items[key].Revision; current != revision {
		return "", conflict(key, revision, current)
	}
	rev := newRevision()
	items[key] = fileItem{Revision: rev, Data: string(data)}
	if err := f.write(items); err != nil {
		return "", err
	}
	return rev, nil
}

// Close implements KV.
func (f *File) Close() error { return nil }
