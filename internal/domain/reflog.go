package domain

import (
	"fmt"
	"strings"
)

// ReflogEntry is one line of a branch reflog.
type ReflogEntry struct {
	Old      string
	New      string
	Identity string
	Date     string
	TZ       string
	Message  string
}

// ParseReflogLine parses `<old> <new> <ident> <date> <tz>\t<message>`.
// The tab and message are optional.
func ParseReflogLine(line string) (ReflogEntry, error) {
	line = strings.TrimRight(line, "\r\n")
	beforeEmail, afterEmail, ok := strings.Cut(line, ">")
	if !ok {
		return ReflogEntry{}, fmt.Errorf("%w: missing identity in %q", ErrCorruptReflog, line)
	}
	beforeEmail += ">"
	fields := strings.SplitN(beforeEmail, " ", 3)
	if len(fields) != 3 || fields[0] == "" || fields[1] == "" {
		return ReflogEntry{}, fmt.Errorf("%w: malformed object ids in %q", ErrCorruptReflog, line)
	}
	stamp, message, _ := strings.Cut(afterEmail, "\t")
	parts := strings.SplitN(stamp, " ", 3)
	if len(parts) != 3 || parts[0] != "" || parts[1] == "" || parts[2] == "" {
		return ReflogEntry{}, fmt.Errorf("%w: malformed date in %q", ErrCorruptReflog, line)
	}
	return ReflogEntry{
		Old:      fields[0],
		New:      fields[1],
		Identity: fields[2],
		Date:     parts[1],
		TZ:       parts[2],
		Message:  message,
	}, nil
}

// ParseReflog parses every non-empty line of a reflog file, oldest first.
func ParseReflog(content string) ([]ReflogEntry, error) {
	var entries []ReflogEntry
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := ParseReflogLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// RebaseFinishedPrefix is the message git writes to a branch reflog when a
// rebase of that branch completes.
func RebaseFinishedPrefix(branch string) string {
	return "rebase finished: refs/heads/" + branch + " onto "
}

// LastRebaseOnto scans entries newest first and returns the commit the most
// recent finished rebase of branch landed on.
func LastRebaseOnto(entries []ReflogEntry, branch string) (string, bool) {
	prefix := RebaseFinishedPrefix(branch)
	for i := len(entries) - 1; i >= 0; i-- {
		if !strings.HasPrefix(entries[i].Message, prefix) {
			continue
		}
		tokens := strings.Fields(entries[i].Message)
		return tokens[len(tokens)-1], true
	}
	return "", false
}
