package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes command results in JSON or human form.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	color  bool
	styles styles
}

type styles struct {
	err     lipgloss.Style
	warning lipgloss.Style
	success lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
	key     lipgloss.Style
}

// NewPrinter creates a Printer writing to w. Styles are only applied when
// color is true.
func NewPrinter(w io.Writer, jsonMode bool, color bool) *Printer {
	plain := lipgloss.NewStyle()
	p := &Printer{
		w:      w,
		errW:   w,
		json:   jsonMode,
		color:  color,
		styles: styles{err: plain, warning: plain, success: plain, title: plain, muted: plain, key: plain},
	}
	if color {
		p.styles = styles{
			err:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			muted:   lipgloss.NewStyle().Faint(true),
			key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		}
	}
	return p
}

// WithStderr sets a separate writer for human-mode errors and warnings.
// JSON errors always go to the main writer.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON reports whether the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// Color reports whether styled output is enabled.
func (p *Printer) Color() bool {
	return p.color
}

// Writer returns the main output writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Success writes a result. In human mode only the "message" key is shown.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.WriteJSON(data)
	}
	if msg, ok := data["message"].(string); ok {
		mustWrite(fmt.Fprintln(p.w, p.styles.success.Render(msg)))
	}
	return nil
}

// Error writes err with its exit code.
func (p *Printer) Error(err error) {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitUserError, Message: err.Error()}
	}
	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		mustWrite(fmt.Fprintln(p.w))
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.err.Render("Error"), exitErr.Message))
}

// Warn writes a warning.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]any{"warning": msg})
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.warning.Render("Warning"), msg))
}

// WriteJSON encodes data as indented JSON.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorJSON returns {"error": message, "code": code}.
func ErrorJSON(message string, code int) []byte {
	result, _ := json.Marshal(map[string]any{"error": message, "code": code})
	return result
}

// Print writes formatted text without a newline.
func (p *Printer) Print(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.w, format, args...))
}

// Println writes a line.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// Section writes a blank line, then title over an underline.
func (p *Printer) Section(title string) {
	mustWrite(fmt.Fprintln(p.w))
	mustWrite(fmt.Fprintln(p.w, p.styles.title.Render(title)))
	mustWrite(fmt.Fprintln(p.w, p.styles.muted.Render(strings.Repeat("─", lipgloss.Width(title)))))
}

// Muted writes a de-emphasised line.
func (p *Printer) Muted(s string) {
	mustWrite(fmt.Fprintln(p.w, p.styles.muted.Render(s)))
}

// KeyValue writes "key: value".
func (p *Printer) KeyValue(key, value string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.key.Render(key+":"), value))
}

// Table writes rows under headers with aligned columns. Widths are
// measured in terminal cells so labels with symbols line up.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	widths := columnWidths(headers, rows)
	p.tableRow(headers, widths, p.styles.title)
	for _, row := range rows {
		p.tableRow(row, widths, lipgloss.NewStyle())
	}
}

func (p *Printer) tableRow(cells []string, widths []int, s lipgloss.Style) {
	var b strings.Builder
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		if i == len(cells)-1 || i == len(widths)-1 {
			b.WriteString(s.Render(cell))
			continue
		}
		b.WriteString(s.Render(padRight(cell, widths[i])))
	}
	mustWrite(fmt.Fprintln(p.w, b.String()))
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// mustWrite panics if a write to the terminal or a buffer fails.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}
