package notify

import "strings"

// Subject is the subject line of every digest email.
const Subject = "Product Update Notification"

// maxNamesPerLine caps how many product names a digest line spells out.
const maxNamesPerLine = 3

// Digest renders the buckets as the email body and in-app notification text.
// Each non-empty bucket becomes one line naming at most three products.
// Empty buckets produce no line; fully empty buckets produce "".
func Digest(buckets Buckets) string {
	var b strings.Builder
	writeLine(&b, "New products available: ", buckets.New)
	writeLine(&b, "Products on sale: ", buckets.OnSale)
	writeLine(&b, "Products restocked: ", buckets.ReStock)

	return b.String()
}

func writeLine(b *strings.Builder, label string, names []string) {
	if len(names) == 0 {
		return
	}
	if len(names) > maxNamesPerLine {
		names = names[:maxNamesPerLine]
	}
	b.WriteString(label)
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n")
}
