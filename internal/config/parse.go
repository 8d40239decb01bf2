package config

import (
	"bufio"
	"io"
	"math"
	"strings"
)

// Entry is one key=value line.
type Entry struct {
	Line  int // 1-based line number
	Key   string
	Value string
}

// ParseLines reads the key=value grammar shared by config, overlay and
// locale files. A '#' starts a comment that runs to the end of the line.
// Keys and values are trimmed of spaces, tabs and trailing CR/LF. Lines that
// are blank, have no '=', or have an empty key are skipped.
func ParseLines(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	// Lines have no length limit; a long obstacle list must not end the parse.
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt32)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if hash := strings.IndexByte(line, '#'); hash >= 0 {
			line = line[:hash]
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}

		key := trim(line[:eq])
		if key == "" {
			continue
		}
		entries = append(entries, Entry{
			Line:  lineNo,
			Key:   key,
			Value: trim(line[eq+1:]),
		})
	}
	return entries, scanner.Err()
}

// trim strips leading spaces/tabs and trailing spaces/tabs/CR/LF.
func trim(s string) string {
	return strings.TrimRight(strings.TrimLeft(s, " \t"), " \t\r\n")
}
