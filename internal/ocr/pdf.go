package ocr

import "regexp"

// Page objects carry "/Type /Page" in the document body; the page tree root
// uses "/Type /Pages". \b keeps the two apart.
var (
	pdfPageRe  = regexp.MustCompile(`/Type\s*/Page\b`)
	pdfCountRe = regexp.MustCompile(`/Type\s*/Pages[^>]*?/Count\s+(\d+)`)
)

// countPDFPages determines the page count of a PDF without a full parse.
// It first looks for the page tree's /Count entry and falls back to counting
// page objects. PDFs that compress their object streams hide both from a
// plain byte scan; those report 0, meaning "unknown", and the caller decides
// whether to proceed.
func countPDFPages(data []byte) int {
	if m := pdfCountRe.FindSubmatch(data); m != nil {
		count := 0
		for _, c := range m[1] {
			count = count*10 + int(c-'0')
		}
		return count
	}
	return len(pdfPageRe.FindAll(data, -1))
}
