package handler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"vocabook/internal/domain"
)

// cleanArg removes surrounding whitespace and non-printable characters from user input
func cleanArg(arg string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(arg))
}

// parseIndex converts a 1-based position from the command line into a record index
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(cleanArg(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: position must be a number from 1, got %q", domain.ErrValidation, arg)
	}
	return n - 1, nil
}

// resolve maps a target argument to a file and its category
func (h *Handler) resolve(target string) (string, domain.Category, error) {
	return h.layout.Resolve(cleanArg(target))
}
