package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kjk/flatlib/library"
	"github.com/kjk/flatlib/log"
	"github.com/kjk/flatlib/record"
	"github.com/kjk/flatlib/u"
)

// errInputClosed is returned (as a panic value) when stdin ends
// in the middle of a prompt. mainMenu recovers it and exits.
var errInputClosed = errors.New("input closed")

type app struct {
	lib *library.Library
	in  *bufio.Reader
	out io.Writer
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// readLine returns next line without the trailing newline
func (a *app) readLine(prompt string) string {
	a.printf("%s", prompt)
	s, err := a.in.ReadString('\n')
	if err != nil && (s == "" || err != io.EOF) {
		panic(errInputClosed)
	}
	return strings.TrimRight(s, "\r\n")
}

func (a *app) getInt(prompt string, minv, maxv *int64) int64 {
	for {
		s := strings.TrimSpace(a.readLine(prompt))
		if s == "" {
			a.printf("Value is required\n")
			continue
		}
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			a.printf("Must be a whole number, try again\n")
			continue
		}
		if minv != nil && n < *minv {
			a.printf("Value must be >= %d\n", *minv)
			continue
		}
		if maxv != nil && n > *maxv {
			a.printf("Value must be <= %d\n", *maxv)
			continue
		}
		return n
	}
}

// getOptIntMin returns nil for empty input
func (a *app) getOptIntMin(prompt string, minv int64) *int64 {
	for {
		s := strings.TrimSpace(a.readLine(prompt))
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			a.printf("Must be a whole number, try again\n")
			continue
		}
		if n < minv {
			a.printf("Value must be >= %d\n", minv)
			continue
		}
		return &n
	}
}

func (a *app) getID(prompt string) int32 {
	return int32(a.getInt(prompt, nil, nil))
}

func (a *app) getIntRange(prompt string, minv, maxv int64) int64 {
	return a.getInt(prompt, &minv, &maxv)
}

func (a *app) getIntMin(prompt string, minv int64) int64 {
	return a.getInt(prompt, &minv, nil)
}

// getFloat returns nil if allowEmpty and the input is empty
func (a *app) getFloat(prompt string, minv float64, allowEmpty bool) *float32 {
	for {
		s := strings.TrimSpace(a.readLine(prompt))
		if s == "" {
			if allowEmpty {
				return nil
			}
			a.printf("Value is required\n")
			continue
		}
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			a.printf("Must be a number, try again\n")
			continue
		}
		if f < minv {
			a.printf("Value must be >= %v\n", minv)
			continue
		}
		v := float32(f)
		return &v
	}
}

func (a *app) getDate(prompt string, allowEmpty bool) string {
	for {
		s := strings.TrimSpace(a.readLine(prompt))
		if s == "" && allowEmpty {
			return ""
		}
		if _, err := time.Parse(library.DateLayout, s); err != nil {
			a.printf("Date must be YYYY-MM-DD e.g. 2025-09-07\n")
			continue
		}
		return s
	}
}

// getStr warns and cuts the value if it's longer than maxLen bytes
func (a *app) getStr(prompt string, maxLen int, allowEmpty bool) string {
	for {
		s := strings.TrimRight(a.readLine(prompt), " \t")
		if s == "" && !allowEmpty {
			a.printf("Can't be empty, try again\n")
			continue
		}
		if len(s) > maxLen {
			a.printf("Longer than %d bytes, will be truncated\n", maxLen)
			s = s[:record.TruncateLen(s, maxLen)]
			if s == "" && !allowEmpty {
				a.printf("Nothing left after truncation, try again\n")
				continue
			}
		}
		return s
	}
}

// getOptStr returns nil for empty input ("keep current value")
func (a *app) getOptStr(prompt string, maxLen int) *string {
	s := a.getStr(prompt, maxLen, true)
	if s == "" {
		return nil
	}
	return &s
}

func (a *app) getOptDate(prompt string) *string {
	s := a.getDate(prompt, true)
	if s == "" {
		return nil
	}
	return &s
}

func (a *app) confirm(prompt string) bool {
	s := strings.ToLower(strings.TrimSpace(a.readLine(prompt)))
	return s == "y" || s == "yes"
}

// fieldSize returns byte budget of a text field
func fieldSize(s *record.Schema, name string) int {
	f, idx := s.FieldByName(name)
	u.PanicIf(idx < 0, "no field '%s' in schema '%s'", name, s.Name)
	return f.Size
}

// reportErr prints err in a user-friendly way. Returns true if err != nil
func (a *app) reportErr(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, library.ErrDuplicateKey):
		a.printf("Already exists: %s\n", err)
	case errors.Is(err, library.ErrNotFound):
		a.printf("Not found: %s\n", err)
	case errors.Is(err, record.ErrMalformedBlock):
		a.printf("Data file is damaged: %s\n", err)
	default:
		log.Errorf("%s", err)
	}
	return true
}
