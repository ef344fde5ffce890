package cheats

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads a cheat file into g. The file format is as follows:
//
//	# Cheat Name
//	01FF10C1
//	01FF11C1
//
// Codes before the first name are named after their own code. Blank
// lines are ignored.
func Parse(r io.Reader, g *GameShark) error {
	scanner := bufio.NewScanner(r)

	var name string
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "":
			continue
		case text[0] == '#':
			name = strings.TrimSpace(text[1:])
			continue
		}

		codeName := name
		if codeName == "" {
			codeName = text
		}
		if err := g.Load(text, codeName); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return scanner.Err()
}
