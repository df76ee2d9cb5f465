package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

func parseDocument(in io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		// protocols are UTF-8; older exports only claim otherwise
		return input, nil
	}
	if _, err := doc.ReadFrom(in); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	return doc, nil
}

// textContent concatenates all descendant character data in document order.
// A nil element has no text.
func textContent(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			b.WriteString(textContent(t))
		}
	}
	return b.String()
}

// descendantText is the text of the first descendant named tag.
func descendantText(el *etree.Element, tag string) string {
	return textContent(el.FindElement(".//" + tag))
}
