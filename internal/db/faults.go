package db

import (
	"regexp"
	"strconv"
)

// FaultClass is the retry verdict for a storage error.
type FaultClass int

const (
	// FaultRetryable marks errors expected to clear on their own, such as
	// lock contention or a transient I/O hiccup.
	FaultRetryable FaultClass = iota
	// FaultFatal marks errors that retrying cannot fix, such as constraint
	// violations or malformed SQL.
	FaultFatal
)

func (class FaultClass) String() string {
	if class == FaultRetryable {
		return "retryable"
	}
	return "fatal"
}

// SQLite result codes as surfaced in driver error messages. Extended codes
// of the retryable/fatal families are listed explicitly; anything else
// falls back to its primary code (low byte) before defaulting to fatal.
var retryableCodes = map[int]struct{}{
	5:   {}, // SQLITE_BUSY
	6:   {}, // SQLITE_LOCKED
	10:  {}, // SQLITE_IOERR
	13:  {}, // SQLITE_FULL
	14:  {}, // SQLITE_CANTOPEN
	15:  {}, // SQLITE_PROTOCOL
	261: {}, // SQLITE_BUSY_RECOVERY
	262: {}, // SQLITE_LOCKED_SHAREDCACHE
	517: {}, // SQLITE_BUSY_SNAPSHOT
}

var fatalCodes = map[int]struct{}{
	1:    {}, // SQLITE_ERROR (syntax, missing table)
	8:    {}, // SQLITE_READONLY
	11:   {}, // SQLITE_CORRUPT
	18:   {}, // SQLITE_TOOBIG
	19:   {}, // SQLITE_CONSTRAINT
	20:   {}, // SQLITE_MISMATCH
	21:   {}, // SQLITE_MISUSE
	23:   {}, // SQLITE_AUTH
	25:   {}, // SQLITE_RANGE
	26:   {}, // SQLITE_NOTADB
	275:  {}, // SQLITE_CONSTRAINT_CHECK
	787:  {}, // SQLITE_CONSTRAINT_FOREIGNKEY
	1555: {}, // SQLITE_CONSTRAINT_PRIMARYKEY
	2067: {}, // SQLITE_CONSTRAINT_UNIQUE
}

var (
	parenthesizedCodePattern = regexp.MustCompile(`\((\d+)\)`)
	bareCodePattern          = regexp.MustCompile(`(\d+)`)

	transientMessagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)database is locked`),
		regexp.MustCompile(`(?i)database table is locked`),
		regexp.MustCompile(`(?i)disk i/o error`),
		regexp.MustCompile(`(?i)temporary failure`),
		regexp.MustCompile(`(?i)resource temporarily unavailable`),
	}
)

// Classify maps a raw storage error to a retry verdict. It is pure and
// deterministic: a numeric result code embedded in the message wins, then
// known transient message patterns, and everything unrecognized is fatal
// so that unrecoverable conditions are never retried forever.
func Classify(err error) FaultClass {
	if err == nil {
		return FaultFatal
	}
	message := err.Error()

	if code, found := extractResultCode(message); found {
		if verdict, known := lookupCode(code); known {
			return verdict
		}
		if primary := code & 0xff; primary != code {
			if verdict, known := lookupCode(primary); known {
				return verdict
			}
		}
		return FaultFatal
	}

	for _, pattern := range transientMessagePatterns {
		if pattern.MatchString(message) {
			return FaultRetryable
		}
	}
	return FaultFatal
}

func lookupCode(code int) (FaultClass, bool) {
	if _, retryable := retryableCodes[code]; retryable {
		return FaultRetryable, true
	}
	if _, fatal := fatalCodes[code]; fatal {
		return FaultFatal, true
	}
	return FaultFatal, false
}

func extractResultCode(message string) (int, bool) {
	match := parenthesizedCodePattern.FindStringSubmatch(message)
	if match == nil {
		match = bareCodePattern.FindStringSubmatch(message)
	}
	if match == nil {
		return 0, false
	}
	code, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return code, true
}
