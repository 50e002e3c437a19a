package recipemd

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-recipemd/internal/markdown"
)

// Parser parses RecipeMD documents into Recipe values. The parser is
// stateless between calls and safe to reuse across documents.
type Parser struct {
	engine *markdown.Engine
}

// NewParser constructs a recipe parser backed by a goldmark engine.
func NewParser() *Parser {
	return &Parser{engine: markdown.NewEngine()}
}

// Parse parses a markdown document into a Recipe. Grammar violations surface
// as StructuralError, amount positions without a numeric value as
// MalformedAmountError.
func (p *Parser) Parse(source []byte) (*Recipe, error) {
	doc := &docParser{
		source: source,
		index:  markdown.NewLineIndex(source),
	}
	doc.cur = p.engine.Parse(source).FirstChild()
	return doc.parse()
}

// ParseString is a convenience wrapper around Parse.
func (p *Parser) ParseString(source string) (*Recipe, error) {
	return p.Parse([]byte(source))
}

// docParser is a forward-only cursor over the top-level sibling blocks of a
// parsed document.
type docParser struct {
	source []byte
	index  *markdown.LineIndex
	cur    ast.Node
}

func (d *docParser) parse() (*Recipe, error) {
	title, err := d.parseTitle()
	if err != nil {
		return nil, err
	}

	description := d.parseDescription()

	tags, yields, err := d.parseTagsAndYields()
	if err != nil {
		return nil, err
	}

	if _, ok := d.cur.(*ast.ThematicBreak); !ok {
		return nil, d.structural("thematic break before ingredients required")
	}
	d.advance()

	ingredients, groups, err := d.parseIngredients()
	if err != nil {
		return nil, err
	}
	if len(ingredients) == 0 && len(groups) == 0 {
		return nil, d.structural("at least one ingredient or ingredient group required")
	}

	if _, ok := d.cur.(*ast.ThematicBreak); ok {
		d.advance()
	}

	return &Recipe{
		Title:        title,
		Description:  description,
		Tags:         tags,
		Yields:       yields,
		Ingredients:  ingredients,
		Groups:       groups,
		Instructions: d.parseInstructions(),
	}, nil
}

func (d *docParser) advance() {
	if d.cur != nil {
		d.cur = d.cur.NextSibling()
	}
}

// lineOf returns the 1-based line of a node's first source segment, or zero
// for position-less nodes.
func (d *docParser) lineOf(n ast.Node) int {
	if n == nil {
		return 0
	}
	if start, _, ok := markdown.Span(n); ok {
		return d.index.LineOf(start) + 1
	}
	return 0
}

func (d *docParser) structural(reason string) error {
	return &StructuralError{Reason: reason, Line: d.lineOf(d.cur)}
}

func (d *docParser) parseTitle() (string, error) {
	heading, ok := d.cur.(*ast.Heading)
	if !ok || heading.Level != 1 {
		return "", d.structural("level 1 title heading required")
	}
	title := strings.TrimSpace(markdown.BlockText(heading, d.source))
	d.advance()
	return title, nil
}

// parseDescription consumes blocks up to the first thematic break or
// emphasis-only paragraph and returns their raw source, line-exact.
func (d *docParser) parseDescription() string {
	startLine, endLine := -1, -1
	for d.cur != nil {
		if _, isBreak := d.cur.(*ast.ThematicBreak); isBreak {
			break
		}
		if _, _, ok := d.emphasisParagraph(d.cur); ok {
			break
		}
		if start, stop, ok := markdown.Span(d.cur); ok {
			if startLine < 0 {
				startLine = d.index.LineOf(start)
			}
			endLine = d.index.LineOf(stop-1) + 1
		}
		d.advance()
	}
	if startLine < 0 {
		return ""
	}
	return d.index.Slice(startLine, endLine)
}

// emphasisParagraph reports whether n is a paragraph whose entire content is
// a single emphasis (level 1, tags) or strong emphasis (level 2, yields)
// span, returning the raw inner source of the span.
func (d *docParser) emphasisParagraph(n ast.Node) (level int, content string, ok bool) {
	para, isPara := n.(*ast.Paragraph)
	if !isPara {
		return 0, "", false
	}
	child := skipEmptyText(para.FirstChild(), d.source)
	emph, isEmph := child.(*ast.Emphasis)
	if !isEmph {
		return 0, "", false
	}
	if rest := skipEmptyText(emph.NextSibling(), d.source); rest != nil {
		return 0, "", false
	}
	start, stop, hasSpan := markdown.Span(emph)
	if !hasSpan {
		return 0, "", false
	}
	return emph.Level, string(d.source[start:stop]), true
}

func (d *docParser) parseTagsAndYields() ([]string, []Amount, error) {
	var tags []string
	var yields []Amount
	tagsSeen, yieldsSeen := false, false

	for d.cur != nil {
		level, content, ok := d.emphasisParagraph(d.cur)
		if !ok {
			break
		}
		line := d.lineOf(d.cur)
		if level == 1 {
			if tagsSeen {
				return nil, nil, d.structural("tags may not be specified multiple times")
			}
			tagsSeen = true
			for _, tag := range SplitAmountList(content) {
				if tag != "" {
					tags = append(tags, tag)
				}
			}
		} else {
			if yieldsSeen {
				return nil, nil, d.structural("yields may not be specified multiple times")
			}
			yieldsSeen = true
			for _, element := range SplitAmountList(content) {
				if element == "" {
					continue
				}
				amount, err := parseRequiredAmount(element, line)
				if err != nil {
					return nil, nil, err
				}
				if amount != nil {
					yields = append(yields, *amount)
				}
			}
		}
		d.advance()
	}
	return tags, yields, nil
}

func (d *docParser) parseIngredients() ([]Ingredient, []IngredientGroup, error) {
	var ingredients []Ingredient
	var groups []IngredientGroup
	for d.cur != nil {
		switch d.cur.(type) {
		case *ast.Heading:
			if err := d.parseGroups(&groups, -1); err != nil {
				return nil, nil, err
			}
		case *ast.List:
			if err := d.parseIngredientList(&ingredients); err != nil {
				return nil, nil, err
			}
		default:
			return ingredients, groups, nil
		}
	}
	return ingredients, groups, nil
}

// parseGroups parses consecutive headings into ingredient groups. A heading
// whose level is not deeper than parentLevel belongs to an ancestor and is
// left unconsumed.
func (d *docParser) parseGroups(dst *[]IngredientGroup, parentLevel int) error {
	for d.cur != nil {
		heading, ok := d.cur.(*ast.Heading)
		if !ok || heading.Level <= parentLevel {
			return nil
		}
		title := strings.TrimSpace(markdown.BlockText(heading, d.source))
		if title == "" {
			return d.structural("ingredient group title required")
		}
		d.advance()

		group := IngredientGroup{Title: title}
		if err := d.parseIngredientList(&group.Ingredients); err != nil {
			return err
		}
		if err := d.parseGroups(&group.Groups, heading.Level); err != nil {
			return err
		}
		*dst = append(*dst, group)
	}
	return nil
}

func (d *docParser) parseIngredientList(dst *[]Ingredient) error {
	for d.cur != nil {
		list, ok := d.cur.(*ast.List)
		if !ok {
			return nil
		}
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			ingredient, err := d.parseListItem(item)
			if err != nil {
				return err
			}
			*dst = append(*dst, ingredient)
		}
		d.advance()
	}
	return nil
}

// parseListItem produces one ingredient from a list item. The first
// paragraph-like child may start with an emphasis span holding the amount;
// further child blocks continue the name verbatim.
func (d *docParser) parseListItem(item ast.Node) (Ingredient, error) {
	var ingredient Ingredient

	first := item.FirstChild()
	continuationStart := -1

	if isParagraphLike(first) {
		parsed, err := d.parseItemParagraph(item, first)
		if err != nil {
			return Ingredient{}, err
		}
		ingredient = parsed
		if _, stop, ok := markdown.Span(first); ok {
			continuationStart = d.index.LineOf(stop-1) + 1
		}
	}

	startLine, endLine := -1, -1
	for block := first; block != nil; block = block.NextSibling() {
		if block == first && isParagraphLike(first) {
			continue
		}
		if start, stop, ok := markdown.Span(block); ok {
			if startLine < 0 {
				startLine = d.index.LineOf(start)
			}
			endLine = d.index.LineOf(stop-1) + 1
		}
	}
	if startLine >= 0 {
		if continuationStart >= 0 && continuationStart < startLine {
			startLine = continuationStart
		}
		continuation := d.index.Slice(startLine, endLine)
		if ingredient.Name != "" {
			ingredient.Name += "\n" + continuation
		} else {
			ingredient.Name = continuation
		}
	}

	ingredient.Name = strings.TrimSpace(ingredient.Name)
	if ingredient.Name == "" {
		return Ingredient{}, &StructuralError{Reason: "ingredient name required", Line: d.lineOf(item)}
	}
	return ingredient, nil
}

func (d *docParser) parseItemParagraph(item, para ast.Node) (Ingredient, error) {
	var ingredient Ingredient

	line := d.lineOf(para)
	paraStart, paraEnd, hasSpan := markdown.Span(para)
	restStart := paraStart

	afterAmount := para.FirstChild()
	if emph, ok := skipEmptyText(afterAmount, d.source).(*ast.Emphasis); ok && emph.Level == 1 {
		amount, err := parseRequiredAmount(markdown.PlainText(emph, d.source), line)
		if err != nil {
			return Ingredient{}, err
		}
		ingredient.Amount = amount
		if _, stop, ok := markdown.Span(emph); ok {
			// the closing delimiter is not part of the children's span
			restStart = stop + emph.Level
		}
		afterAmount = emph.NextSibling()
	}

	// an ingredient whose whole remaining content is a single link references
	// another recipe; the link only counts when the item has no further blocks
	if item.ChildCount() == 1 {
		if link, ok := wrappingLink(afterAmount, d.source); ok {
			ingredient.Link = string(link.Destination)
			ingredient.Name = strings.TrimSpace(markdown.PlainText(link, d.source))
			return ingredient, nil
		}
	}

	if hasSpan && restStart < paraEnd {
		ingredient.Name = strings.TrimSpace(string(d.source[restStart:paraEnd]))
	}
	return ingredient, nil
}

// parseInstructions returns the raw source from the current block to the end
// of the document.
func (d *docParser) parseInstructions() string {
	if d.cur == nil {
		return ""
	}

	startLine, endLine := -1, -1
	leadingBreaks := 0
	for n := d.cur; n != nil; n = n.NextSibling() {
		if _, isBreak := n.(*ast.ThematicBreak); isBreak && startLine < 0 {
			leadingBreaks++
			continue
		}
		if start, stop, ok := markdown.Span(n); ok {
			if startLine < 0 {
				startLine = d.index.LineOf(start)
			}
			endLine = d.index.LineOf(stop-1) + 1
		}
	}
	if startLine < 0 {
		return ""
	}

	// thematic breaks carry no position; when the instructions start with
	// one, back up to the matching divider line in the raw source
	for i := 0; i < leadingBreaks; i++ {
		prev := startLine - 1
		for prev >= 0 && strings.TrimSpace(d.index.LineText(prev)) == "" {
			prev--
		}
		if prev < 0 || !thematicBreakLine.MatchString(d.index.LineText(prev)) {
			break
		}
		startLine = prev
	}

	return d.index.Slice(startLine, endLine)
}

var thematicBreakLine = regexp.MustCompile(`^ {0,3}(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)

func isParagraphLike(n ast.Node) bool {
	if n == nil {
		return false
	}
	kind := n.Kind()
	return kind == ast.KindParagraph || kind == ast.KindTextBlock
}

// skipEmptyText steps over zero-width text nodes.
func skipEmptyText(n ast.Node, source []byte) ast.Node {
	for n != nil {
		text, ok := n.(*ast.Text)
		if !ok || len(text.Segment.Value(source)) > 0 {
			return n
		}
		n = n.NextSibling()
	}
	return nil
}

// skipWhitespaceText steps over whitespace-only text nodes.
func skipWhitespaceText(n ast.Node, source []byte) ast.Node {
	for n != nil {
		text, ok := n.(*ast.Text)
		if !ok || strings.TrimSpace(string(text.Segment.Value(source))) != "" {
			return n
		}
		n = n.NextSibling()
	}
	return nil
}

// wrappingLink reports whether the inline sequence starting at n consists of
// exactly one link, ignoring surrounding whitespace.
func wrappingLink(n ast.Node, source []byte) (*ast.Link, bool) {
	n = skipWhitespaceText(n, source)
	link, ok := n.(*ast.Link)
	if !ok {
		return nil, false
	}
	if rest := skipWhitespaceText(link.NextSibling(), source); rest != nil {
		return nil, false
	}
	return link, true
}
