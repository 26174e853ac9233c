package scraper

import (
	"fmt"
	"strings"
)

// Extract builds a Document from the parsed war status page.
func Extract(root Element) (*Document, error) {
	heading, ok := root.Find("h2", func(e Element) bool {
		return e.Text() == WarStatusHeading
	})
	if !ok {
		return nil, &ExtractionError{Kind: ErrHeadingNotFound}
	}
	para, ok := heading.NextSibling("p")
	if !ok {
		return nil, &ExtractionError{Kind: ErrStatusParagraphNotFound}
	}

	warStatus, generated, err := splitStatus(para.Text())
	if err != nil {
		return nil, err
	}
	generatedTimestamp, err := ParseTimestamp(generated)
	if err != nil {
		return nil, err
	}

	table, ok := root.Find("table", func(e Element) bool {
		class, ok := e.Attr("class")
		return ok && class == TableClass
	})
	if !ok {
		return nil, &ExtractionError{Kind: ErrTableNotFound}
	}

	rows := table.FindAll("tr")
	var sides []string
	if len(rows) > 0 {
		sides = cellTexts(rows[0], "th", false)
		rows = rows[1:]
	}
	if len(sides) != NumSides {
		return nil, &ExtractionError{
			Kind:   ErrInvalidSideCount,
			Detail: fmt.Sprintf("got %d, should be %d", len(sides), NumSides),
		}
	}

	var headers []string
	if len(rows) > 0 {
		headers = cellTexts(rows[0], "th", true)
		rows = rows[1:]
	}
	if len(headers) != NumHeaders {
		return nil, &ExtractionError{
			Kind:   ErrInvalidHeaderCount,
			Detail: fmt.Sprintf("got %d, should be %d", len(headers), NumHeaders),
		}
	}

	warlords := make([]Side, len(sides))
	for i, description := range sides {
		warlords[i] = Side{Description: description, Characters: []Record{}}
	}
	for _, row := range rows {
		groups, err := Partition(cellTexts(row, "td", false), len(sides))
		if err != nil {
			return nil, err
		}
		for i := range warlords {
			warlords[i].Characters = append(warlords[i].Characters, zipRecord(headers, groups[i]))
		}
	}

	return &Document{
		Generated:          generated,
		GeneratedTimestamp: generatedTimestamp,
		SchemaVersion:      SchemaVersion,
		WarStatus:          warStatus,
		Warlords:           warlords,
	}, nil
}

// splitStatus separates the status text from the trailing "Generated on" line.
func splitStatus(text string) (string, string, error) {
	text = strings.TrimSpace(text)
	idx := strings.LastIndex(text, "\n")
	if idx < 0 {
		return "", "", &TimestampError{Text: text}
	}
	return text[:idx], Normalize(text[idx+1:]), nil
}

func cellTexts(row Element, tag string, lower bool) []string {
	cells := row.FindAll(tag)
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		text := strings.TrimSpace(c.Text())
		if lower {
			text = strings.ToLower(text)
		}
		out = append(out, text)
	}
	return out
}

// zipRecord pairs headers with values, stopping at the shorter of the two.
func zipRecord(headers, values []string) Record {
	n := min(len(headers), len(values))
	rec := make(Record, n)
	for i := 0; i < n; i++ {
		rec[headers[i]] = values[i]
	}
	return rec
}
