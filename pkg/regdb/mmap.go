package regdb

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile is a read-only memory mapping of the database file.
type mmapFile struct {
	data []byte
	size int64
}

func openMmap(path string) (*mmapFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat database: %w", err)
	}

	size := info.Size()
	if size == 0 {
		return &mmapFile{data: nil, size: 0}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap database: %w", err)
	}

	return &mmapFile{data: data, size: size}, nil
}

func (m *mmapFile) close() error {
	if m.data == nil {
		return nil
	}
	if err := unix.Munmap(m.data); err != nil {
		return fmt.Errorf("munmap database: %w", err)
	}
	m.data = nil
	return nil
}
