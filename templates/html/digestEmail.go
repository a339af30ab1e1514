package templates

import (
	"fmt"
	"html"
	"strings"
)

// DigestItem is one report line in a department digest
type DigestItem struct {
	ReferenceID string
	Category    string
	Location    string
	Description string
	Priority    string
	SubmittedAt string
}

// RenderDigestEmail generates the HTML for the daily digest sent to a
// department. All values are HTML-escaped.
func RenderDigestEmail(department string, items []DigestItem) string {
	safeDepartment := html.EscapeString(department)

	var rows strings.Builder
	for _, item := range items {
		fmt.Fprintf(&rows, `
        <tr>
          <td>#%s</td>
          <td>%s</td>
          <td>%s</td>
          <td>%s</td>
          <td>%s</td>
          <td>%s</td>
        </tr>`,
			html.EscapeString(item.ReferenceID),
			html.EscapeString(item.Category),
			html.EscapeString(item.Location),
			html.EscapeString(item.Description),
			html.EscapeString(item.Priority),
			html.EscapeString(item.SubmittedAt),
		)
	}

	content := fmt.Sprintf(`<p>%d new issue report(s) were submitted in the last 24 hours.</p>
      <table>
        <tr>
          <th>Reference</th>
          <th>Category</th>
          <th>Location</th>
          <th>Description</th>
          <th>Priority</th>
          <th>Submitted</th>
        </tr>%s
      </table>`, len(items), rows.String())

	return renderLayout(safeDepartment, content)
}

// RenderDigestText is the plain text alternative of RenderDigestEmail
func RenderDigestText(department string, items []DigestItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d new issue report(s) in the last 24 hours\n\n", department, len(items))
	for _, item := range items {
		fmt.Fprintf(&b, "#%s [%s] %s - %s (%s, %s)\n",
			item.ReferenceID, item.Category, item.Location, item.Description, item.Priority, item.SubmittedAt)
	}
	return b.String()
}
