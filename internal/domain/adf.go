package domain

import (
	"regexp"
	"strings"
)

// ADF node types used when building documents for Jira Cloud v3 endpoints.
const (
	adfTypeDoc         = "doc"
	adfTypeParagraph   = "paragraph"
	adfTypeHeading     = "heading"
	adfTypeBulletList  = "bulletList"
	adfTypeOrderedList = "orderedList"
	adfTypeListItem    = "listItem"
	adfTypeText        = "text"
)

// headingLevel is the fixed level assigned to every heading the converter
// emits. Jira renders level 3 as a subsection title, which matches how
// "Label:" lines are used in issue descriptions.
const headingLevel = 3

// orderedItemPattern matches an ordered list marker: one or more digits,
// a period, and a space at the start of the line.
var orderedItemPattern = regexp.MustCompile(`^\d+\. `)

// ADFDocument is the root of an Atlassian Document Format tree. Jira Cloud
// v3 endpoints require description and comment bodies in this format
// instead of plain text.
type ADFDocument struct {
	Type    string     `json:"type"`
	Version int        `json:"version"`
	Content []*ADFNode `json:"content"`
}

// ADFNode is a single block or inline node within an ADF document. Block
// nodes carry child nodes in Content; text nodes carry the literal text.
type ADFNode struct {
	Type    string        `json:"type"`
	Attrs   *ADFNodeAttrs `json:"attrs,omitempty"`
	Content []*ADFNode    `json:"content,omitempty"`
	Text    string        `json:"text,omitempty"`
}

// ADFNodeAttrs holds node attributes. Only the heading level is used here.
type ADFNodeAttrs struct {
	Level int `json:"level,omitempty"`
}

// ConvertTextToADF converts a plain-text block into an Atlassian Document
// Format document. It recognizes four structures, checked in order per line:
//
//   - a blank or whitespace-only line closes any open list and emits nothing
//   - a line whose trimmed content starts with "- " becomes a bullet list
//     item; consecutive bullet lines collapse into one bulletList node
//   - a line starting with digits, a period and a space becomes an ordered
//     list item, collapsing the same way
//   - a line whose trimmed text ends with ":" and is followed by a blank
//     line (or the end of the block) becomes a heading
//
// Any other line becomes a standalone paragraph holding the raw line text.
// The conversion is deterministic and never fails; unrecognized structure
// degrades to plain paragraphs. Lists do not nest.
func ConvertTextToADF(text string) *ADFDocument {
	doc := &ADFDocument{
		Type:    adfTypeDoc,
		Version: 1,
		Content: []*ADFNode{},
	}

	lines := strings.Split(text, "\n")

	// Tracks the list node accepting items. Only consecutive lines of the
	// same list kind share a node; anything else resets it to nil.
	var openList *ADFNode

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			openList = nil
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "- "):
			if openList == nil || openList.Type != adfTypeBulletList {
				openList = &ADFNode{Type: adfTypeBulletList}
				doc.Content = append(doc.Content, openList)
			}
			openList.Content = append(openList.Content, newListItem(strings.TrimPrefix(trimmed, "- ")))

		case orderedItemPattern.MatchString(trimmed):
			if openList == nil || openList.Type != adfTypeOrderedList {
				openList = &ADFNode{Type: adfTypeOrderedList}
				doc.Content = append(doc.Content, openList)
			}
			openList.Content = append(openList.Content, newListItem(orderedItemPattern.ReplaceAllString(trimmed, "")))

		case strings.HasSuffix(trimmed, ":") && nextLineBlank(lines, i):
			openList = nil
			doc.Content = append(doc.Content, &ADFNode{
				Type:    adfTypeHeading,
				Attrs:   &ADFNodeAttrs{Level: headingLevel},
				Content: []*ADFNode{{Type: adfTypeText, Text: trimmed}},
			})

		default:
			openList = nil
			doc.Content = append(doc.Content, &ADFNode{
				Type:    adfTypeParagraph,
				Content: []*ADFNode{{Type: adfTypeText, Text: line}},
			})
		}
	}

	return doc
}

// newListItem wraps item text in the listItem/paragraph/text nesting that
// ADF requires for list entries.
func newListItem(text string) *ADFNode {
	return &ADFNode{
		Type: adfTypeListItem,
		Content: []*ADFNode{{
			Type:    adfTypeParagraph,
			Content: []*ADFNode{{Type: adfTypeText, Text: text}},
		}},
	}
}

// nextLineBlank reports whether the line after index i is blank or the
// block ends there. Headings are only recognized in that position.
func nextLineBlank(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return true
	}
	return strings.TrimSpace(lines[i+1]) == ""
}
