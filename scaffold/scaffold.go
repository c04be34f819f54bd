// Package scaffold holds the starter site written by `folio new`: config,
// a sample content document, page shells, header and footer components and
// a stylesheet. Files ending in .tmpl use text/template syntax.
package scaffold

import "embed"

//go:embed all:templates
var Templates embed.FS
