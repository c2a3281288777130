package gene

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadFASTA loads a single-record gene FASTA file. Letter case in the
// sequence body is preserved (uppercase = exon, lowercase = intron). The
// header line is ">NAME [STRAND]" where STRAND is plus or minus; plus is
// assumed when absent. Gzipped files (.gz) are handled transparently.
func ReadFASTA(path string) (*Gene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gene file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return ParseFASTA(reader)
}

// ParseFASTA parses a single gene record from FASTA content.
func ParseFASTA(reader io.Reader) (*Gene, error) {
	scanner := bufio.NewScanner(reader)
	// Increase buffer size for long sequence lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var name, strand string
	var sequence strings.Builder
	sawHeader := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if sawHeader {
				return nil, fmt.Errorf("multiple records in gene file (second header %q)", line)
			}
			sawHeader = true
			name, strand = parseHeader(line)
			continue
		}
		sequence.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan gene file: %w", err)
	}

	if sequence.Len() == 0 {
		return nil, fmt.Errorf("gene %s: %w", name, ErrEmptySequence)
	}

	return New(name, strand, sequence.String())
}

// parseHeader extracts the gene name and strand from a FASTA header line.
func parseHeader(header string) (name, strand string) {
	header = strings.TrimPrefix(header, ">")
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return "", ""
	}
	name = fields[0]
	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "plus", "+":
			strand = "plus"
		case "minus", "-":
			strand = "minus"
		}
	}
	return name, strand
}
