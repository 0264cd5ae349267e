package pipeline

import (
	"strconv"
	"strings"

	"github.com/matzehuels/isomer/pkg/errors"
)

func parseRange(spec string, first, last int) (int, int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return first, last, nil
	}

	loStr, hiStr, isRange := strings.Cut(spec, ":")
	if !isRange {
		hiStr = loStr
	}
	lo, err := bound(loStr, first)
	if err != nil {
		return 0, 0, err
	}
	hi, err := bound(hiStr, last)
	if err != nil {
		return 0, 0, err
	}
	if lo < 0 || lo > hi {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "invalid zero range %q", spec)
	}
	return lo, hi, nil
}

func bound(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid zero count %q", s)
	}
	return n, nil
}
