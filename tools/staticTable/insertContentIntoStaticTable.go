// Regenerates the staticTable literal in internal/hpack/header.go from the
// RFC 7541 Appendix A listing ("index; name; value" per line).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
)

func main() {
	var path = flag.String("content", "", "file holding the Appendix A listing")
	flag.Parse()

	if *path == "" {
		panic("The file path is required")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		splitLine := strings.Split(scanner.Text(), ";")
		if len(splitLine) < 2 {
			continue
		}

		name := strings.TrimSpace(splitLine[1])
		value := ""
		if len(splitLine) > 2 {
			value = strings.TrimSpace(splitLine[2])
		}

		if value == "" {
			fmt.Printf("\t{Name: %q},\n", name)
		} else {
			fmt.Printf("\t{Name: %q, Value: %q},\n", name, value)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}
