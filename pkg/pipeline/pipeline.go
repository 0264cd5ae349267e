// Package pipeline runs a complete enumeration of one solid:
//
//  1. Group: close the solid's generators into its rotation group
//  2. Validate: check distances against the group
//  3. Enumerate: list one coloring per orbit for every zero count
//  4. Rank: score representatives by average zero distance and sort
//
// The CLI and the API server both go through a [Runner], which adds result
// caching, optional persistence and output files:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Solid: "rbc"})
//	if err != nil {
//	    return err
//	}
//	for _, level := range res.Run.Levels {
//	    fmt.Println(level.Zeros, len(level.Entries))
//	}
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isomer/pkg/core/coloring"
	"github.com/matzehuels/isomer/pkg/core/group"
	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/report"
	"github.com/matzehuels/isomer/pkg/solid"
)

// Options configures one pipeline run.
type Options struct {
	// Solid names a registered solid. Def, when set, is used instead.
	Solid string
	Def   *solid.Solid

	// Closure selects the group closure algorithm (default brute).
	Closure group.Mode

	// Zeros lists the zero counts to enumerate; nil means the solid's
	// default range.
	Zeros []int

	// Seen selects the seen-set used while enumerating (default map).
	Seen coloring.SeenKind

	SkipValidate bool // skip geometry validation
	Check        bool // compare each orbit count with Burnside's lemma
	Refresh      bool // ignore cached results (still writes them)

	// OutDir, when set, receives one text file per zero count and
	// run.json. It must not exist; the run fails before any work if it does.
	OutDir string

	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks opts and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Def == nil && o.Solid == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no solid given")
	}
	if o.Closure == "" {
		o.Closure = group.ModeBrute
	}
	if _, err := group.ParseMode(string(o.Closure)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "closure")
	}
	if o.Seen == "" {
		o.Seen = coloring.SeenMap
	}
	if _, err := coloring.ParseSeenKind(string(o.Seen)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "seen-set")
	}
	for _, z := range o.Zeros {
		if z < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "negative zero count %d", z)
		}
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	o.validated = true
	return nil
}

// Result is the outcome of Execute.
type Result struct {
	Run   *report.Run
	Solid *solid.Solid
	Group *group.Group

	// Files lists the paths written to OutDir, in order.
	Files []string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timings of the pipeline stages.
type Stats struct {
	GroupTime     time.Duration
	ValidateTime  time.Duration
	EnumerateTime time.Duration
}

// CacheInfo counts cache hits and misses of per-zero enumerations.
type CacheInfo struct {
	Hits   int
	Misses int
}

// ParseZeros parses a zero count range such as "4", "2:9", ":5" or "3:".
// Open ends are filled from first and last.
func ParseZeros(spec string, first, last int) ([]int, error) {
	lo, hi, err := parseRange(spec, first, last)
	if err != nil {
		return nil, err
	}
	var out []int
	for z := lo; z <= hi; z++ {
		out = append(out, z)
	}
	return out, nil
}
