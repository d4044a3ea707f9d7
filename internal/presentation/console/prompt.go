package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// errInputClosed ends the session when the input stream runs out.
	errInputClosed = errors.New("console: input closed")

	errNotANumber  = errors.New("console: not a number")
	errOutOfRange  = errors.New("console: out of range")
	errNotPositive = errors.New("console: not positive")
	errNotYesOrNo  = errors.New("console: expected Y or N")
)

const cutset = " \t\r"

// reader wraps line-oriented input. Every prompt reads exactly one line.
type reader struct {
	scanner *bufio.Scanner
}

func newReader(in io.Reader) *reader {
	return &reader{scanner: bufio.NewScanner(in)}
}

func (r *reader) readLine() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", errInputClosed, err)
		}
		return "", errInputClosed
	}
	return r.scanner.Text(), nil
}

// parseNumber accepts only an unsigned run of decimal digits.
func parseNumber(input string) (int, error) {
	input = strings.Trim(input, cutset)
	if input == "" {
		return 0, errNotANumber
	}
	for _, c := range input {
		if c < '0' || c > '9' {
			return 0, errNotANumber
		}
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		// digits only, so the only failure is overflow
		return 0, errOutOfRange
	}
	return n, nil
}

// parseMenuChoice parses a numbered menu choice in [lo, hi].
func parseMenuChoice(input string, lo, hi int) (int, error) {
	n, err := parseNumber(input)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, errOutOfRange
	}
	return n, nil
}

// parseQuantity parses a strictly positive quantity.
func parseQuantity(input string) (int, error) {
	n, err := parseNumber(input)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errNotPositive
	}
	return n, nil
}

// parseYesNo accepts exactly one character, Y or N, in either case.
func parseYesNo(input string) (bool, error) {
	input = strings.Trim(input, cutset)
	switch input {
	case "Y", "y":
		return true, nil
	case "N", "n":
		return false, nil
	default:
		return false, errNotYesOrNo
	}
}
