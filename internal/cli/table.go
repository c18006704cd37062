package cli

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tOgg1/msgboard/internal/models"
)

const (
	tablePadding     = 2
	maxContentWidth  = 60
	createdAtLayout  = "2006-01-02 15:04:05"
	missingTimestamp = "-"
)

var messageHeaders = []string{"ID", "USERNAME", "CREATED", "CONTENT"}

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	updateWidth := func(index int, value string) {
		if index >= colCount {
			return
		}
		displayWidth := runewidth.StringWidth(value)
		if displayWidth > widths[index] {
			widths[index] = displayWidth
		}
	}

	for idx, header := range headers {
		updateWidth(idx, header)
	}
	for _, row := range rows {
		for idx, cell := range row {
			updateWidth(idx, cell)
		}
	}

	writer := bufio.NewWriter(out)
	var writeErr error
	writeString := func(value string) {
		if writeErr != nil {
			return
		}
		_, writeErr = writer.WriteString(value)
	}
	writeRow := func(row []string) {
		for idx := 0; idx < colCount; idx++ {
			cell := ""
			if idx < len(row) {
				cell = row[idx]
			}
			writeString(cell)
			if idx < colCount-1 {
				padding := widths[idx] - runewidth.StringWidth(cell)
				if padding < 0 {
					padding = 0
				}
				writeString(strings.Repeat(" ", padding+tablePadding))
			}
		}
		writeString("\n")
	}

	if len(headers) > 0 {
		writeRow(headers)
	}
	for _, row := range rows {
		writeRow(row)
	}
	if writeErr != nil {
		return writeErr
	}
	return writer.Flush()
}

// messageRows flattens messages into table cells: local creation time,
// content on one line, escape sequences stripped and long text cut.
func messageRows(msgs []models.Message) [][]string {
	rows := make([][]string, 0, len(msgs))
	for _, msg := range msgs {
		created := missingTimestamp
		if !msg.CreatedAt.IsZero() {
			created = msg.CreatedAt.Local().Format(createdAtLayout)
		}
		content := strings.Join(strings.Fields(stripANSI(msg.Content)), " ")
		rows = append(rows, []string{
			msg.ID.String(),
			stripANSI(msg.Username),
			created,
			runewidth.Truncate(content, maxContentWidth, "..."),
		})
	}
	return rows
}

func stripANSI(value string) string {
	if value == "" {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if value[i] != 0x1b || i+1 >= len(value) || value[i+1] != '[' {
			b.WriteByte(value[i])
			continue
		}
		i += 2
		for i < len(value) {
			ch := value[i]
			if ch >= 0x40 && ch <= 0x7e {
				break
			}
			i++
		}
	}
	return b.String()
}
