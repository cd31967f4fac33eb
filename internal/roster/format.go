package roster

import "strings"

func formatLine(u UserRecord) string {
	return u.Username + ":" + u.Password + "\n"
}

func (pf *parsedFile) Bytes() []byte {
	var b strings.Builder
	for _, ln := range pf.lines {
		if ln.entry != nil {
			b.WriteString(formatLine(*ln.entry))
			continue
		}
		b.WriteString(ln.raw)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
