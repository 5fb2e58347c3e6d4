package usghole

import (
	"bufio"
	"os"
)

// FileLoader reads blacklist entries from a local file. Used for lists kept on
// the gateway itself, next to the downloaded ones.
type FileLoader struct {
	filename string
}

var _ Loader = &FileLoader{}

func NewFileLoader(filename string) *FileLoader {
	return &FileLoader{filename}
}

func (l *FileLoader) Load() ([]string, error) {
	log := Log.WithField("file", l.filename)
	log.Debug("loading blacklist")

	f, err := os.Open(l.filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	log.Debug("completed loading blacklist")
	return lines, scanner.Err()
}

func (l *FileLoader) String() string {
	return l.filename
}
