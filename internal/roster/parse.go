package roster

import (
	"bufio"
	"io"
	"strings"
)

type rawLine struct {
	raw   string
	entry *UserRecord
}

type parsedFile struct {
	lines []rawLine
}

func (pf *parsedFile) entries() []*UserRecord {
	out := make([]*UserRecord, 0, len(pf.lines))
	for i := range pf.lines {
		if pf.lines[i].entry != nil {
			out = append(out, pf.lines[i].entry)
		}
	}
	return out
}

func (pf *parsedFile) find(username string) *UserRecord {
	for _, e := range pf.entries() {
		if e.Username == username {
			return e
		}
	}
	return nil
}

// delete drops every record named username and reports whether any matched.
func (pf *parsedFile) delete(username string) bool {
	kept := pf.lines[:0]
	changed := false
	for _, ln := range pf.lines {
		if ln.entry != nil && ln.entry.Username == username {
			changed = true
			continue
		}
		kept = append(kept, ln)
	}
	pf.lines = kept
	return changed
}

func readLines(r io.Reader) ([]string, error) {
	s := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	s.Buffer(buf, 1024*1024)
	var lines []string
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// parse reads roster content. Blank lines are dropped. Lines without a
// delimiter, or with an empty username, are kept verbatim but are not
// records. The password is everything after the first colon.
func parse(r io.Reader) (*parsedFile, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	var pf parsedFile
	for _, line := range lines {
		trim := strings.TrimSpace(line)
		if trim == "" {
			continue
		}
		name, pass, ok := strings.Cut(trim, ":")
		if !ok || name == "" {
			pf.lines = append(pf.lines, rawLine{raw: trim})
			continue
		}
		pf.lines = append(pf.lines, rawLine{entry: &UserRecord{Username: name, Password: pass}})
	}
	return &pf, nil
}
