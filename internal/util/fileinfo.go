package util

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"syscall"
)

// fingerprintSize is how much of the file tail goes into the fingerprint
const fingerprintSize = 2048

// FileInfo identifies one version of a file on disk.
type FileInfo struct {
	ModTime     int64  // nanoseconds since the epoch
	Size        int64  // bytes
	Inode       uint64 // changes when an editor replaces the file
	Fingerprint string // CRC32 of the last 2KB
}

// GetFileInfo stats path and fingerprints its tail.
// Supported on Linux and macOS.
func GetFileInfo(path string) (FileInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileInfo{}, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return FileInfo{}, err
	}
	sysStat, ok := stat.Sys().(*syscall.Stat_t)
	if !ok {
		return FileInfo{}, fmt.Errorf("failed to get file system information: %s", path)
	}

	fingerprint, err := tailChecksum(file, stat.Size())
	if err != nil {
		return FileInfo{}, err
	}

	return FileInfo{
		ModTime:     stat.ModTime().UnixNano(),
		Size:        stat.Size(),
		Inode:       sysStat.Ino,
		Fingerprint: fingerprint,
	}, nil
}

func tailChecksum(file *os.File, size int64) (string, error) {
	readSize := int64(fingerprintSize)
	if size < readSize {
		readSize = size
	}

	data := make([]byte, readSize)
	if _, err := file.ReadAt(data, size-readSize); err != nil && err != io.EOF {
		return "", err
	}
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE(data)), nil
}
