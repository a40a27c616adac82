package coordinator

import (
	"fmt"
	"strings"
)

// BuildPrompt deterministically renders the generation prompt from the
// caller-supplied parameters. Pure string formatting: identical inputs yield
// the identical prompt, so the oracle exchange stays reproducible.
func BuildPrompt(documentType, requirements string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a professional %s legal document.\n\n", strings.TrimSpace(documentType))
	fmt.Fprintf(&b, "Requirements:\n%s\n\n", strings.TrimSpace(requirements))
	b.WriteString("The document must use formal legal language, include all standard clauses ")
	b.WriteString("for this document type, and leave bracketed placeholders for names, dates, ")
	b.WriteString("and signatures. Return only the document text.")
	return b.String()
}
