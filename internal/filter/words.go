package filter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// defaultWords is the built-in vocabulary used when no word list file is
// configured.
var defaultWords = []string{
	"damn",
	"dammit",
	"goddamn",
	"hell",
	"crap",
	"bastard",
	"bitch",
	"shit",
	"bullshit",
	"ass",
	"asshole",
	"jackass",
	"piss",
	"fuck",
	"fucking",
	"motherfucker",
}

// DefaultWords returns a copy of the built-in word list.
func DefaultWords() []string {
	return append([]string(nil), defaultWords...)
}

// LoadWords reads a plain-text word list, one entry per line. Blank
// lines and lines starting with '#' are skipped.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return words, nil
}
