package wireframe

import (
	"fmt"
	"html"
)

const placeholderTemplate = `<div class="wf-placeholder" data-page-kind="%[2]s" style="display:flex;flex-direction:column;align-items:center;justify-content:center;min-height:480px;padding:48px;font-family:'Segoe UI',sans-serif;background:#faf9f8;border:2px dashed #c8c6c4;border-radius:8px;color:#323130;text-align:center">
  <span style="font-size:12px;letter-spacing:1px;text-transform:uppercase;color:#605e5c">%[3]s</span>
  <h1 style="margin:8px 0 12px;font-size:28px;font-weight:600">%[1]s</h1>
  <p style="max-width:420px;margin:0 0 24px;color:#605e5c">This %[4]s is empty. Generate a layout from its description or start from the first page.</p>
  <div style="display:flex;gap:12px">
    <button type="button" data-action="generate-content" style="padding:8px 20px;border:none;border-radius:4px;background:#0078d4;color:#fff;font-weight:600;cursor:pointer">Generate Content</button>
    <button type="button" data-action="copy-first-page" style="padding:8px 20px;border:1px solid #8a8886;border-radius:4px;background:#fff;color:#323130;cursor:pointer">Copy from First Page</button>
  </div>
</div>`

const failedTemplate = `<div class="wf-placeholder wf-generation-failed" data-page-kind="%[3]s" style="display:flex;flex-direction:column;align-items:center;justify-content:center;min-height:480px;padding:48px;font-family:'Segoe UI',sans-serif;background:#fdf3f4;border:2px dashed #d13438;border-radius:8px;color:#323130;text-align:center">
  <span style="font-size:12px;letter-spacing:1px;text-transform:uppercase;color:#a4262c">%[4]s · generation failed</span>
  <h1 style="margin:8px 0 12px;font-size:28px;font-weight:600">%[1]s</h1>
  <p style="max-width:420px;margin:0 0 8px;color:#605e5c">Content for this %[5]s could not be generated.</p>
  <blockquote style="max-width:420px;margin:0 0 24px;color:#605e5c;font-style:italic">%[2]s</blockquote>
  <button type="button" data-action="retry-generation" style="padding:8px 20px;border:none;border-radius:4px;background:#0078d4;color:#fff;font-weight:600;cursor:pointer">Retry Generation</button>
</div>`

// Placeholder renders the empty-state document for a page that has no content yet.
// Output depends only on its arguments.
func Placeholder(name string, kind Kind) string {
	label := kind.Label()
	return fmt.Sprintf(placeholderTemplate,
		html.EscapeString(name),
		html.EscapeString(string(ParseKind(string(kind)))),
		html.EscapeString(label),
		kind.lowerLabel(),
	)
}

// FailedPlaceholder renders the stand-in used when content generation for a page failed.
func FailedPlaceholder(name, description string, kind Kind) string {
	label := kind.Label()
	return fmt.Sprintf(failedTemplate,
		html.EscapeString(name),
		html.EscapeString(description),
		html.EscapeString(string(ParseKind(string(kind)))),
		html.EscapeString(label),
		kind.lowerLabel(),
	)
}
