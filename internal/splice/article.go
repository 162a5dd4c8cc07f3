package splice

import (
	"strings"

	"golang.org/x/net/html"

	gerrors "git.home.luguber.info/inful/gallerygen/internal/errors"
)

const defaultArticleIndent = "    "

// span is a half-open byte range in the document.
type span struct{ start, end int }

// container describes the element holding the faction articles.
type container struct {
	openEnd    int // first byte after the opening tag
	closeStart int // first byte of the matching closing tag
	articles   []article
}

type article struct {
	span
	targets []string
}

// UpsertArticle replaces the trigger article for target inside the first
// element whose class list contains containerClass.
//
// Every article carrying data-panel-target equal to target is removed
// together with its leading line break and indentation. The fragment is then
// indented like the first remaining article (four spaces when none is left)
// and inserted before the container's trailing whitespace.
//
// When no such container exists the document is returned unchanged with a
// structure error.
func UpsertArticle(doc, containerClass, target, fragment string) (string, error) {
	c, ok := findContainer(doc, containerClass)
	if !ok {
		return doc, gerrors.StructureNotFound(containerClass)
	}

	var edits []Edit
	indent := ""
	for _, a := range c.articles {
		if a.carries(target) {
			edits = append(edits, Edit{Start: lineStart(doc, a.start), End: a.end})
			continue
		}
		if indent == "" {
			indent = leadingIndent(doc, a.start)
		}
	}
	if indent == "" {
		indent = defaultArticleIndent
	}

	inner := doc[c.openEnd:c.closeStart]
	insertPos := c.closeStart - (len(inner) - len(strings.TrimRight(inner, " \t\r\n")))
	edits = append(edits, Edit{
		Start:       insertPos,
		End:         insertPos,
		Replacement: "\n" + indent + reindent(strings.TrimSpace(fragment), indent),
	})

	return ApplyEdits(doc, edits)
}

func (a article) carries(target string) bool {
	for _, t := range a.targets {
		if t == target {
			return true
		}
	}
	return false
}

// findContainer walks the token stream once, tracking byte offsets through
// the raw token lengths.
func findContainer(doc, class string) (container, bool) {
	z := html.NewTokenizer(strings.NewReader(doc))

	var (
		c            container
		tag          string
		depth        int
		offset       int
		articleDepth int
		current      *article
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or a tokenizer failure: the container never closed.
			return container{}, false
		}
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, attrs := tagAttrs(z)
			if depth == 0 {
				if tt == html.StartTagToken && hasClass(attrs["class"], class) {
					tag = name
					depth = 1
					c.openEnd = offset
				}
				continue
			}
			if tt == html.StartTagToken && name == tag {
				depth++
			}
			if name == "article" && tt == html.StartTagToken {
				articleDepth++
				if articleDepth == 1 {
					c.articles = append(c.articles, article{span: span{start: start}})
					current = &c.articles[len(c.articles)-1]
				}
			}
			if current != nil {
				if t, ok := attrs["data-panel-target"]; ok {
					current.targets = append(current.targets, t)
				}
			}
		case html.EndTagToken:
			if depth == 0 {
				continue
			}
			name, _ := z.TagName()
			if string(name) == "article" && articleDepth > 0 {
				articleDepth--
				if articleDepth == 0 && current != nil {
					current.end = offset
					current = nil
				}
			}
			if string(name) == tag {
				depth--
				if depth == 0 {
					c.closeStart = start
					// Drop an article left open at the container end.
					if current != nil {
						c.articles = c.articles[:len(c.articles)-1]
					}
					return c, true
				}
			}
		}
	}
}

func tagAttrs(z *html.Tokenizer) (string, map[string]string) {
	name, more := z.TagName()
	attrs := map[string]string{}
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		if _, seen := attrs[string(key)]; !seen {
			attrs[string(key)] = string(val)
		}
	}
	return string(name), attrs
}

func hasClass(classAttr, class string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == class {
			return true
		}
	}
	return false
}

// lineStart extends pos backwards over indentation and one line break.
func lineStart(doc string, pos int) int {
	i := pos
	for i > 0 && (doc[i-1] == ' ' || doc[i-1] == '\t') {
		i--
	}
	if i > 0 && doc[i-1] == '\n' {
		i--
		if i > 0 && doc[i-1] == '\r' {
			i--
		}
	}
	return i
}

// leadingIndent returns the whitespace between the previous line break and
// pos, or "" when other text shares the line.
func leadingIndent(doc string, pos int) string {
	i := pos
	for i > 0 && (doc[i-1] == ' ' || doc[i-1] == '\t') {
		i--
	}
	if i > 0 && doc[i-1] != '\n' {
		return ""
	}
	return doc[i:pos]
}

func reindent(fragment, indent string) string {
	lines := strings.Split(fragment, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}
