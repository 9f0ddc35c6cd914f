package domain

import (
	"testing"
)

// itemText extracts the text of a list item, which ADF nests as
// listItem -> paragraph -> text.
func itemText(t *testing.T, item *ADFNode) string {
	t.Helper()

	if item.Type != "listItem" {
		t.Fatalf("node type = %s, want listItem", item.Type)
	}
	if len(item.Content) != 1 || item.Content[0].Type != "paragraph" {
		t.Fatalf("listItem should contain exactly one paragraph, got %+v", item.Content)
	}
	paragraph := item.Content[0]
	if len(paragraph.Content) != 1 || paragraph.Content[0].Type != "text" {
		t.Fatalf("paragraph should contain exactly one text node, got %+v", paragraph.Content)
	}
	return paragraph.Content[0].Text
}

// TestConvertTextToADF_DocumentEnvelope verifies the root document shape.
func TestConvertTextToADF_DocumentEnvelope(t *testing.T) {
	doc := ConvertTextToADF("hello")

	if doc.Type != "doc" {
		t.Errorf("doc.Type = %s, want doc", doc.Type)
	}
	if doc.Version != 1 {
		t.Errorf("doc.Version = %d, want 1", doc.Version)
	}
	if doc.Content == nil {
		t.Error("doc.Content is nil, want non-nil")
	}
}

// TestConvertTextToADF_Paragraph verifies that an ordinary line becomes a
// paragraph holding the raw line text.
func TestConvertTextToADF_Paragraph(t *testing.T) {
	doc := ConvertTextToADF("just some text")

	if len(doc.Content) != 1 {
		t.Fatalf("len(doc.Content) = %d, want 1", len(doc.Content))
	}

	node := doc.Content[0]
	if node.Type != "paragraph" {
		t.Errorf("node.Type = %s, want paragraph", node.Type)
	}
	if len(node.Content) != 1 || node.Content[0].Text != "just some text" {
		t.Errorf("paragraph text = %+v, want 'just some text'", node.Content)
	}
}

// TestConvertTextToADF_ParagraphKeepsRawLine verifies that paragraph text
// preserves leading whitespace from the original line.
func TestConvertTextToADF_ParagraphKeepsRawLine(t *testing.T) {
	doc := ConvertTextToADF("  indented text")

	if len(doc.Content) != 1 {
		t.Fatalf("len(doc.Content) = %d, want 1", len(doc.Content))
	}

	got := doc.Content[0].Content[0].Text
	if got != "  indented text" {
		t.Errorf("paragraph text = %q, want %q", got, "  indented text")
	}
}

// TestConvertTextToADF_HeadingBeforeBlank verifies that a line ending with
// a colon followed by a blank line becomes a heading.
func TestConvertTextToADF_HeadingBeforeBlank(t *testing.T) {
	doc := ConvertTextToADF("Overview:\n\nSome details here.")

	if len(doc.Content) != 2 {
		t.Fatalf("len(doc.Content) = %d, want 2", len(doc.Content))
	}

	heading := doc.Content[0]
	if heading.Type != "heading" {
		t.Errorf("first node type = %s, want heading", heading.Type)
	}
	if heading.Attrs == nil || heading.Attrs.Level != 3 {
		t.Errorf("heading attrs = %+v, want level 3", heading.Attrs)
	}
	if len(heading.Content) != 1 || heading.Content[0].Text != "Overview:" {
		t.Errorf("heading text = %+v, want 'Overview:' with the colon kept", heading.Content)
	}

	if doc.Content[1].Type != "paragraph" {
		t.Errorf("second node type = %s, want paragraph", doc.Content[1].Type)
	}
}

// TestConvertTextToADF_HeadingAtEndOfBlock verifies that a colon line at
// the very end of the text also becomes a heading.
func TestConvertTextToADF_HeadingAtEndOfBlock(t *testing.T) {
	doc := ConvertTextToADF("Next steps:")

	if len(doc.Content) != 1 {
		t.Fatalf("len(doc.Content) = %d, want 1", len(doc.Content))
	}
	if doc.Content[0].Type != "heading" {
		t.Errorf("node type = %s, want heading", doc.Content[0].Type)
	}
}

// TestConvertTextToADF_HeadingRequiresBlankLine verifies that a colon line
// immediately followed by text stays a paragraph.
func TestConvertTextToADF_HeadingRequiresBlankLine(t *testing.T) {
	doc := ConvertTextToADF("Overview:\nmore text")

	if len(doc.Content) != 2 {
		t.Fatalf("len(doc.Content) = %d, want 2", len(doc.Content))
	}

	first := doc.Content[0]
	if first.Type != "paragraph" {
		t.Errorf("first node type = %s, want paragraph", first.Type)
	}
	if first.Content[0].Text != "Overview:" {
		t.Errorf("paragraph text = %q, want %q", first.Content[0].Text, "Overview:")
	}
}

// TestConvertTextToADF_BulletList verifies that consecutive bullet lines
// collapse into a single bulletList node.
func TestConvertTextToADF_BulletList(t *testing.T) {
	doc := ConvertTextToADF("- a\n- b")

	if len(doc.Content) != 1 {
		t.Fatalf("len(doc.Content) = %d, want 1", len(doc.Content))
	}

	list := doc.Content[0]
	if list.Type != "bulletList" {
		t.Errorf("node type = %s, want bulletList", list.Type)
	}
	if len(list.Content) != 2 {
		t.Fatalf("len(list.Content) = %d, want 2", len(list.Content))
	}
	if got := itemText(t, list.Content[0]); got != "a" {
		t.Errorf("first item text = %q, want %q", got, "a")
	}
	if got := itemText(t, list.Content[1]); got != "b" {
		t.Errorf("second item text = %q, want %q", got, "b")
	}
}

// TestConvertTextToADF_BulletItemUsesTrimmedLine verifies that the bullet
// marker is matched on the trimmed line, so indented bullets still count.
func TestConvertTextToADF_BulletItemUsesTrimmedLine(t *testing.T) {
	doc := ConvertTextToADF("  - spaced item")

	if len(doc.Content) != 1 || doc.Content[0].Type != "bulletList" {
		t.Fatalf("doc.Content = %+v, want a single bulletList", doc.Content)
	}
	if got := itemText(t, doc.Content[0].Content[0]); got != "spaced item" {
		t.Errorf("item text = %q, want %q", got, "spaced item")
	}
}

// TestConvertTextToADF_OrderedList verifies that numbered lines collapse
// into a single orderedList node with the markers stripped.
func TestConvertTextToADF_OrderedList(t *testing.T) {
	doc := ConvertTextToADF("1. first\n2. second\n12. twelfth")

	if len(doc.Content) != 1 {
		t.Fatalf("len(doc.Content) = %d, want 1", len(doc.Content))
	}

	list := doc.Content[0]
	if list.Type != "orderedList" {
		t.Errorf("node type = %s, want orderedList", list.Type)
	}
	if len(list.Content) != 3 {
		t.Fatalf("len(list.Content) = %d, want 3", len(list.Content))
	}
	want := []string{"first", "second", "twelfth"}
	for i, itemWant := range want {
		if got := itemText(t, list.Content[i]); got != itemWant {
			t.Errorf("item %d text = %q, want %q", i, got, itemWant)
		}
	}
}

// TestConvertTextToADF_OrderedMarkerNeedsSpace verifies that a number and
// period without a trailing space is not an ordered item.
func TestConvertTextToADF_OrderedMarkerNeedsSpace(t *testing.T) {
	doc := ConvertTextToADF("1.no space")

	if len(doc.Content) != 1 {
		t.Fatalf("len(doc.Content) = %d, want 1", len(doc.Content))
	}
	if doc.Content[0].Type != "paragraph" {
		t.Errorf("node type = %s, want paragraph", doc.Content[0].Type)
	}
}

// TestConvertTextToADF_MixedListKinds verifies that a bullet line followed
// by an ordered line produces two separate lists, never one.
func TestConvertTextToADF_MixedListKinds(t *testing.T) {
	doc := ConvertTextToADF("- a\n1. b")

	if len(doc.Content) != 2 {
		t.Fatalf("len(doc.Content) = %d, want 2", len(doc.Content))
	}
	if doc.Content[0].Type != "bulletList" {
		t.Errorf("first node type = %s, want bulletList", doc.Content[0].Type)
	}
	if doc.Content[1].Type != "orderedList" {
		t.Errorf("second node type = %s, want orderedList", doc.Content[1].Type)
	}
	if len(doc.Content[0].Content) != 1 || len(doc.Content[1].Content) != 1 {
		t.Errorf("each list should hold one item, got %d and %d",
			len(doc.Content[0].Content), len(doc.Content[1].Content))
	}
}

// TestConvertTextToADF_BlankLineSplitsLists verifies that a blank line
// between bullets closes the open list and starts a fresh one.
func TestConvertTextToADF_BlankLineSplitsLists(t *testing.T) {
	doc := ConvertTextToADF("- a\n\n- b")

	if len(doc.Content) != 2 {
		t.Fatalf("len(doc.Content) = %d, want 2", len(doc.Content))
	}
	for i, node := range doc.Content {
		if node.Type != "bulletList" {
			t.Errorf("node %d type = %s, want bulletList", i, node.Type)
		}
		if len(node.Content) != 1 {
			t.Errorf("node %d should hold one item, got %d", i, len(node.Content))
		}
	}
}

// TestConvertTextToADF_ParagraphSplitsLists verifies that a plain line
// between bullets also closes the open list.
func TestConvertTextToADF_ParagraphSplitsLists(t *testing.T) {
	doc := ConvertTextToADF("- a\nplain text\n- b")

	if len(doc.Content) != 3 {
		t.Fatalf("len(doc.Content) = %d, want 3", len(doc.Content))
	}
	if doc.Content[0].Type != "bulletList" || doc.Content[2].Type != "bulletList" {
		t.Errorf("outer nodes = %s and %s, want bulletList and bulletList",
			doc.Content[0].Type, doc.Content[2].Type)
	}
	if doc.Content[1].Type != "paragraph" {
		t.Errorf("middle node type = %s, want paragraph", doc.Content[1].Type)
	}
}

// TestConvertTextToADF_EmptyInput verifies that empty and whitespace-only
// text produce a document with no content nodes.
func TestConvertTextToADF_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n", "   \n\t\n"} {
		doc := ConvertTextToADF(input)
		if len(doc.Content) != 0 {
			t.Errorf("ConvertTextToADF(%q) produced %d nodes, want 0", input, len(doc.Content))
		}
	}
}

// TestConvertTextToADF_MultiSection exercises a realistic description with
// a heading, paragraphs and both list kinds.
func TestConvertTextToADF_MultiSection(t *testing.T) {
	text := "Summary:\n\nThe login page fails on submit.\n\nSteps:\n\n1. Open the login page\n2. Submit the form\n\nNotes:\n\n- occurs on Firefox\n- not reproducible on staging"

	doc := ConvertTextToADF(text)

	wantTypes := []string{"heading", "paragraph", "heading", "orderedList", "heading", "bulletList"}
	if len(doc.Content) != len(wantTypes) {
		t.Fatalf("len(doc.Content) = %d, want %d", len(doc.Content), len(wantTypes))
	}
	for i, want := range wantTypes {
		if doc.Content[i].Type != want {
			t.Errorf("node %d type = %s, want %s", i, doc.Content[i].Type, want)
		}
	}

	ordered := doc.Content[3]
	if len(ordered.Content) != 2 {
		t.Errorf("ordered list has %d items, want 2", len(ordered.Content))
	}
	bullets := doc.Content[5]
	if got := itemText(t, bullets.Content[0]); got != "occurs on Firefox" {
		t.Errorf("first bullet text = %q, want %q", got, "occurs on Firefox")
	}
}
