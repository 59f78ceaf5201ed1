package storage

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

const snapshotFile = "products.jz"
const settingsFile = "settings.json"

// DiskStorage persists catalog state under RootFolder/Store. Writes go to
// a temp file first and rename into place, a crash mid write never leaves
// a torn file behind.
type DiskStorage struct {
	Store      string
	RootFolder string
}

func NewDiskStorage(store, rootFolder string) *DiskStorage {
	return &DiskStorage{
		Store:      store,
		RootFolder: rootFolder,
	}
}

func (d *DiskStorage) GetFileName(name string) (string, string) {
	fileName := path.Join(d.RootFolder, d.Store, name)
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	return fileName, tmpFileName
}

// SaveSnapshot writes the catalog snapshot that survives a restart.
func (d *DiskStorage) SaveSnapshot(snapshot *types.Snapshot) error {
	return d.SaveGzippedJson(snapshot, snapshotFile)
}

func (d *DiskStorage) LoadSnapshot() (*types.Snapshot, error) {
	snapshot := &types.Snapshot{}
	if err := d.LoadGzippedJson(snapshot, snapshotFile); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (d *DiskStorage) LoadSettings() error {
	types.CurrentSettings.Lock()
	defer types.CurrentSettings.Unlock()
	return d.LoadJson(types.CurrentSettings, settingsFile)
}

func (d *DiskStorage) SaveSettings() error {
	types.CurrentSettings.RLock()
	defer types.CurrentSettings.RUnlock()
	return d.SaveJson(types.CurrentSettings, settingsFile)
}

func (d *DiskStorage) SaveGzippedJson(data any, filename string) error {
	fileName, tmpFileName := d.GetFileName(filename)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	defer file.Close()

	zipWriter := gzip.NewWriter(file)
	enc := json.NewEncoder(zipWriter)
	if err = enc.Encode(data); err != nil {
		zipWriter.Close()
		os.Remove(tmpFileName)
		return err
	}
	if err = zipWriter.Close(); err != nil {
		os.Remove(tmpFileName)
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (d *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := d.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	defer runtime.GC()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	dec := json.NewDecoder(zipReader)
	if err = dec.Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (d *DiskStorage) SaveJson(data any, name string) error {
	fileName, tmpFileName := d.GetFileName(name)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(file)
	err = enc.Encode(data)
	file.Close()
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (d *DiskStorage) LoadJson(data any, filename string) error {
	name, _ := d.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	if err = dec.Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
