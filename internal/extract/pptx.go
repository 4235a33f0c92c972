package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slideEntryRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// xmlNode is a generic parsed element. Text holds the element's own character data.
type xmlNode struct {
	Name     string
	Text     string
	Children []*xmlNode
}

func extractPPTX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pptx open: %w", err)
	}

	var slides []string
	for _, f := range slideEntries(zr.File) {
		text, ok := slideText(f)
		if !ok {
			continue
		}
		slides = append(slides, text)
	}
	return strings.Join(slides, "\n"), nil
}

// slideEntries returns slide parts ordered by slide number.
func slideEntries(files []*zip.File) []*zip.File {
	type numbered struct {
		n int
		f *zip.File
	}
	var found []numbered
	for _, f := range files {
		m := slideEntryRe.FindStringSubmatch(strings.ReplaceAll(f.Name, "\\", "/"))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		found = append(found, numbered{n: n, f: f})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })
	out := make([]*zip.File, 0, len(found))
	for _, item := range found {
		out = append(out, item.f)
	}
	return out
}

// slideText returns the slide's text runs joined by single spaces. ok is false
// when the entry cannot be read or parsed, or holds no text.
func slideText(f *zip.File) (string, bool) {
	rc, err := f.Open()
	if err != nil {
		return "", false
	}
	defer rc.Close()

	root, err := parseXMLTree(rc)
	if err != nil {
		return "", false
	}
	var runs []string
	visitText(root, &runs)
	text := strings.Join(strings.Fields(strings.Join(runs, " ")), " ")
	return text, text != ""
}

func parseXMLTree(r io.Reader) (*xmlNode, error) {
	decoder := xml.NewDecoder(r)
	root := &xmlNode{}
	stack := []*xmlNode{root}
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			child := &xmlNode{Name: t.Name.Local}
			top.Children = append(top.Children, child)
			stack = append(stack, child)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			top.Text += string(t)
		}
	}
	return root, nil
}

// visitText walks the tree depth-first and collects the text of every a:t run
// in document order. Runs without text are skipped.
func visitText(n *xmlNode, out *[]string) {
	if n == nil {
		return
	}
	if n.Name == "t" {
		if text := strings.TrimSpace(n.Text); text != "" {
			*out = append(*out, text)
		}
	}
	for _, child := range n.Children {
		visitText(child, out)
	}
}
