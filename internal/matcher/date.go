package matcher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/mydehq/vidstamp/internal/types"
	"golang.org/x/text/encoding/charmap"
)

// numericDate matches M/D/YYYY with one or two digit month and day.
var numericDate = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)

// wordDate matches "January 5, 2023", "Jan. 5th 2023" and similar.
var wordDate = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)

// ExtractOptions tunes date extraction
type ExtractOptions struct {
	// WordDates enables the month-name fallback when a file holds no numeric date.
	WordDates bool
}

// ExtractDateFile opens path and extracts the first date in it.
func ExtractDateFile(path string, opts ExtractOptions) (types.Date, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Date{}, false, err
	}
	defer f.Close()
	return ExtractDate(f, opts)
}

// ExtractDate scans r line by line and returns the first numeric date.
// Lines that are not valid UTF-8 are decoded as Windows-1252, so decoding
// never fails. Month and day are not range-checked.
func ExtractDate(r io.Reader, opts ExtractOptions) (types.Date, bool, error) {
	br := bufio.NewReader(r)

	var fallback *types.Date
	for {
		raw, err := br.ReadBytes('\n')
		if len(raw) > 0 {
			line := decodeLine(raw)
			if d, ok := ParseNumericDate(line); ok {
				return d, true, nil
			}
			if opts.WordDates && fallback == nil {
				if d, ok := ParseWordDate(line); ok {
					fallback = &d
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return types.Date{}, false, fmt.Errorf("failed to read description: %w", err)
		}
	}

	if fallback != nil {
		return *fallback, true, nil
	}
	return types.Date{}, false, nil
}

// ParseNumericDate returns the first M/D/YYYY date in s.
func ParseNumericDate(s string) (types.Date, bool) {
	m := numericDate.FindStringSubmatch(s)
	if m == nil {
		return types.Date{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return types.Date{Year: year, Month: month, Day: day}, true
}

// ParseWordDate returns the first month-name date in s. Unlike numeric
// dates these are checked against the calendar.
func ParseWordDate(s string) (types.Date, bool) {
	m := wordDate.FindStringSubmatch(s)
	if m == nil {
		return types.Date{}, false
	}
	month := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:3])
	t, err := dateparse.ParseAny(fmt.Sprintf("%s %s, %s", month, m[2], m[3]))
	if err != nil {
		return types.Date{}, false
	}
	return types.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, true
}

func decodeLine(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(out)
}
