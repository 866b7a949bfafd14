package metadata

import "strings"

// FieldSeparator delimits the fields of a metadata record.
const FieldSeparator = ";"

// Normalize strips the whitespace surrounding every field of every line.
//
// Some exports pad fields with spaces and some do not; normalizing both files
// first keeps the comparison from reporting formatting noise. Separators are
// preserved, so a malformed line passes through with only its fields trimmed.
func Normalize(content string) string {
	lines := splitLines(content)

	var b strings.Builder
	b.Grow(len(content))
	for _, line := range lines {
		b.WriteString(NormalizeLine(line))
		b.WriteByte('\n')
	}
	return b.String()
}

// NormalizeLine trims every field of a single line.
func NormalizeLine(line string) string {
	fields := strings.Split(line, FieldSeparator)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return strings.Join(fields, FieldSeparator)
}

// SplitFields splits a normalized record into its fields.
func SplitFields(line string) []string {
	return strings.Split(line, FieldSeparator)
}

// splitLines splits content on newlines. A final newline does not produce a
// trailing empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}
