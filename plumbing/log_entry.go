package plumbing

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

// ErrLogCorrupted is returned when the commit log cannot be parsed
var ErrLogCorrupted = errors.New("commit log is corrupted")

const (
	logCommitPrefix = "commit "
	logAuthorPrefix = "Author: "
)

// LogEntry represents a commit as recorded in the commit log
//
// A LogEntry is persisted as a block of 3 lines:
//
//	commit <fingerprint>
//	Author: <author>
//	<message>
//
// Blocks are stored newest first and separated by an empty line
type LogEntry struct {
	Fingerprint Fingerprint
	Author      string
	Message     string
}

// NewLogEntry returns a new LogEntry
func NewLogEntry(fp Fingerprint, author, message string) *LogEntry {
	return &LogEntry{
		Fingerprint: fp,
		Author:      author,
		Message:     message,
	}
}

// Bytes returns the persisted representation of the entry, which is
// also how the entry is displayed
func (e *LogEntry) Bytes() []byte {
	return []byte(e.String())
}

// String returns the persisted representation of the entry
func (e *LogEntry) String() string {
	return e.Header() + "\n" + e.Details()
}

// Header returns the first line of the entry, without new line
func (e *LogEntry) Header() string {
	return logCommitPrefix + e.Fingerprint.String()
}

// Details returns everything that follows the header: the author line
// and the message, ending with a new line
func (e *LogEntry) Details() string {
	return fmt.Sprintf("%s%s\n%s\n", logAuthorPrefix, e.Author, e.Message)
}

// PrependLog returns log with the entry added on top of it.
// log is not parsed, it is expected to be empty or to contain entries
// sorted newest first
func PrependLog(log []byte, e *LogEntry) []byte {
	buf := bytes.NewBufferString(e.String())
	if len(log) > 0 {
		buf.WriteByte('\n')
		buf.Write(log)
	}
	return buf.Bytes()
}

// ContainsLogHeader returns whether the message contains a line that
// would be read as the start of a new block once persisted
func ContainsLogHeader(message string) bool {
	lines := strings.Split(message, "\n")
	for i := range lines {
		if _, ok := parseLogHeader(lines, i); ok {
			return true
		}
	}
	return false
}

// ParseLog parses a persisted commit log and returns its entries in
// the order they are stored (newest first).
//
// A block starts with a "commit <fingerprint>" line directly followed
// by an "Author: " line. Everything up to the next block is the message,
// which means messages can span multiple lines.
// Logs written without separator between blocks are also supported.
func ParseLog(data []byte) ([]*LogEntry, error) {
	lines := strings.Split(string(data), "\n")

	var entries []*LogEntry
	var current *LogEntry
	var msg []string
	flush := func() {
		if current == nil {
			return
		}
		// we remove the separator between 2 blocks
		for len(msg) > 0 && msg[len(msg)-1] == "" {
			msg = msg[:len(msg)-1]
		}
		current.Message = strings.Join(msg, "\n")
		entries = append(entries, current)
	}

	for i := 0; i < len(lines); i++ {
		if fp, ok := parseLogHeader(lines, i); ok {
			flush()
			current = &LogEntry{
				Fingerprint: fp,
				Author:      parseLogAuthor(lines[i+1]),
			}
			msg = nil
			i++ // we already consumed the author
			continue
		}

		if current == nil {
			if strings.TrimSpace(lines[i]) == "" {
				continue
			}
			return nil, xerrors.Errorf("unexpected data line %d: %w", i+1, ErrLogCorrupted)
		}
		msg = append(msg, lines[i])
	}
	flush()
	return entries, nil
}

// parseLogHeader returns whether the line i and i+1 are the header of
// a log block, and the fingerprint of the block if they are
func parseLogHeader(lines []string, i int) (Fingerprint, bool) {
	if i+1 >= len(lines) {
		return NullFingerprint, false
	}
	if !strings.HasPrefix(lines[i], logCommitPrefix) || !strings.HasPrefix(lines[i+1], strings.TrimSpace(logAuthorPrefix)) {
		return NullFingerprint, false
	}
	fp, err := NewFingerprintFromStr(strings.TrimPrefix(lines[i], logCommitPrefix))
	if err != nil {
		return NullFingerprint, false
	}
	return fp, true
}

// parseLogAuthor returns the author of an "Author: " line.
// The space is optional since an empty author may have lost it
func parseLogAuthor(line string) string {
	line = strings.TrimPrefix(line, strings.TrimSpace(logAuthorPrefix))
	return strings.TrimPrefix(line, " ")
}
