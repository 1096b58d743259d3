package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

// выгрузки из Sheets — UTF-8 (иногда с BOM), из Excel — UTF-16 или cp1252
func charsetDecoder(cs string) *encoding.Decoder {
	switch strings.ToLower(cs) {
	case "windows-1252", "iso-8859-1":
		return charmap.Windows1252.NewDecoder()
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	}
	return unicode.UTF8BOM.NewDecoder()
}

// toUTF8 угадывает кодировку по первым килобайтам и перекодирует поток.
func toUTF8(r io.Reader) *bufio.Reader {
	br := bufio.NewReaderSize(r, sniffSize)
	peek, _ := br.Peek(sniffSize)
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = det.Charset
		}
	}
	return bufio.NewReader(transform.NewReader(br, charsetDecoder(cs)))
}

// sniffComma угадывает разделитель по первой строке: табы, точки с запятой или запятые.
func sniffComma(br *bufio.Reader) rune {
	peek, _ := br.Peek(sniffSize)
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		peek = peek[:i]
	}
	best, n := ',', bytes.Count(peek, []byte{','})
	for _, c := range []rune{';', '\t'} {
		if k := bytes.Count(peek, []byte(string(c))); k > n {
			best, n = c, k
		}
	}
	return best
}

// readCSV reads delimited text as UTF-8 rows. comma 0 means sniff it from the
// first line.
func readCSV(r io.Reader, comma rune) ([][]string, error) {
	br := toUTF8(r)
	if comma == 0 {
		comma = sniffComma(br)
	}

	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
}
