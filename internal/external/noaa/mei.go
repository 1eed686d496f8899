package noaa

import (
	"errors"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
)

// ErrNoIndexData is returned when a page holds no year rows
var ErrNoIndexData = errors.New("no climate index rows found")

// missingSentinel and anything below it marks a missing value in NOAA tables
const missingSentinel = -999

// MEIColumns are the bimonthly seasons of the MEI table; column i is
// attributed to calendar month i+1
var MEIColumns = []string{
	"DECJAN", "JANFEB", "FEBMAR", "MARAPR", "APRMAY", "MAYJUN",
	"JUNJUL", "JULAUG", "AUGSEP", "SEPOCT", "OCTNOV", "NOVDEC",
}

var tableLineRe = regexp.MustCompile(`^(YEAR|19\d\d|20\d\d)\b`)

// ParseMEITable extracts the MEI table from an HTML page. Both an HTML
// <table> and preformatted text lines are understood; only lines that start
// with YEAR (header) or a 19xx/20xx year are kept.
func ParseMEITable(r io.Reader) (*contracts.ClimateIndexTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	table := &contracts.ClimateIndexTable{
		Name:    string(contracts.ColumnMEI),
		Columns: MEIColumns,
	}

	lines := tableRowLines(doc)
	if !parseLines(table, lines) {
		parseLines(table, textLines(doc))
	}

	if len(table.Years) == 0 {
		return nil, ErrNoIndexData
	}
	return table, nil
}

// tableRowLines renders every <tr> as a space separated line
func tableRowLines(doc *goquery.Document) []string {
	var lines []string
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		lines = append(lines, strings.Join(cells, " "))
	})
	return lines
}

// textLines splits the visible text of the page into lines
func textLines(doc *goquery.Document) []string {
	text := doc.Find("pre").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}
	return strings.Split(text, "\n")
}

// parseLines appends year rows found in lines and reports whether any were found
func parseLines(table *contracts.ClimateIndexTable, lines []string) bool {
	found := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !tableLineRe.MatchString(line) {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] == "YEAR" {
			if len(fields) > 1 {
				table.Columns = fields[1:]
			}
			continue
		}

		year, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}

		row := contracts.ClimateIndexYear{Year: year}
		for i := range row.Values {
			row.Values[i] = math.NaN()
			if i+1 < len(fields) {
				row.Values[i] = parseValue(fields[i+1])
			}
		}

		table.Years = append(table.Years, row)
		found = true
	}
	return found
}

func parseValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= missingSentinel {
		return math.NaN()
	}
	return v
}
