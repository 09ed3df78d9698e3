// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// helpMarkdown is the long-form help, rendered through glamour so
// terminals get headings and emphasis.
const helpMarkdown = `# assettrack

Terminal client for the asset management service: browse inventory,
request assets, approve and issue them, return them, and trace every
lifecycle step.

## Getting started

1. Point the client at your service:
   ` + "`assettrack config set api.base_url https://assets.example.com`" + `
2. Create an account or sign in:
   ` + "`assettrack register`" + ` then ` + "`assettrack login`" + `
3. Start the dashboard: ` + "`assettrack`" + `

## Roles

* **user** - browse inventory, request assets, return issued assets,
  scan codes, view personal history.
* **admin** - manage inventory, approve or reject requests, issue
  assets, trace asset history, export activity logs.

Views outside your role show an access notice and send you back to
sign-in. Nothing is fetched for a view you cannot open.

## Subcommands

| Command | Purpose |
| --- | --- |
| ` + "`login` / `register` / `logout`" + ` | Account and session management |
| ` + "`status`" + ` | Service reachability and session state |
| ` + "`config show` / `config set KEY VALUE`" + ` | Configuration |
| ` + "`export-logs [DATE]`" + ` | One day of this invocation's activity as logs-DATE.txt; a running TUI session exports from its Reports view |
| ` + "`barcode PAYLOAD [--code128]`" + ` | Render a QR or Code 128 PNG |
| ` + "`scan [SOURCE]`" + ` | Decode a code from frames or an image |
`

// HandleHelp renders the help document. Falls back to the plain usage
// text when the terminal renderer cannot be built.
func HandleHelp(args Args) {
	if args.Quiet {
		PrintUsage()
		return
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		PrintUsage()
		return
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		PrintUsage()
		return
	}
	fmt.Print(out)
	PrintUsage()
}
