package bram

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// maxLineLength bounds a single line of an initialization file.
const maxLineLength = 1 << 24

// LoadFile reads the initial contents of a memory from a text file. Each line
// holds one word in binary, most significant bit first.
//
// LoadFile performs file I/O and is meant for simulation only.
func LoadFile(path string, width int) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open memory file: %w", err)
	}
	defer f.Close()

	words, err := Load(f, width)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
		}

		return nil, err
	}

	return words, nil
}

// Load reads one word per line from r. It stops at the first line that cannot
// be parsed and returns a *ParseError; no partial result is returned.
func Load(r io.Reader, width int) ([]Word, error) {
	mustBeValidWidth(width)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var words []Word

	line := 0
	for scanner.Scan() {
		line++

		w, err := ParseWord(scanner.Text(), width)
		if err != nil {
			var parseErr *ParseError
			if errors.As(err, &parseErr) {
				parseErr.Line = line
			}

			return nil, err
		}

		words = append(words, w)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read memory file: %w", err)
	}

	return words, nil
}

// ParseWord parses the longest leading run of '0' and '1' characters of line
// as an unsigned binary number, most significant bit first. Anything after
// the run is ignored. A line that does not start with a binary digit is a
// *ParseError. Bits above width are dropped.
func ParseWord(line string, width int) (Word, error) {
	mustBeValidWidth(width)

	n := 0
	for n < len(line) && (line[n] == '0' || line[n] == '1') {
		n++
	}

	if n == 0 {
		return Word{}, &ParseError{Content: line}
	}

	return wordFromDigits(line[:n], width), nil
}
