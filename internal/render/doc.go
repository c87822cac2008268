// Package render produces the static pages of the store directory.
//
// Page templates are plain HTML documents containing placeholder comments
// such as <!-- TITLE -->. Every occurrence of every placeholder is replaced in
// one pass; substituted text is never scanned for further placeholders.
// Markup fragments (sections, list items, hero images) are generated with
// html/template, and text placeholders are HTML-escaped, so spreadsheet
// content cannot inject markup.
package render
