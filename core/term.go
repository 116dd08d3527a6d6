package core

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"github.com/peterh/liner"
	. "github.com/stevegt/goadapt"
	"golang.org/x/term"
)

// AssistantName is the heading printed above everything the assistant
// says.
var AssistantName = "ChatGPT:"

// UserName is the heading printed above operator input.
var UserName = "Me:"

// LineReader reads one line of operator input per call, without the
// line terminator.  It returns io.EOF once no more input will arrive.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// NewLineReader returns a LineReader for in.  Interactive terminals
// get line editing and history; anything else is read as plain lines.
func NewLineReader(in io.Reader) LineReader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return newLinerReader()
	}
	return &plainReader{r: bufio.NewReader(in)}
}

// plainReader reads lines from piped or redirected input.
type plainReader struct {
	r *bufio.Reader
}

func (p *plainReader) ReadLine() (line string, err error) {
	line, err = p.r.ReadString('\n')
	if err == io.EOF && line != "" {
		// last line had no terminator
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return
}

func (p *plainReader) Close() error { return nil }

// linerReader reads lines from a terminal using liner.
type linerReader struct {
	state *liner.State
}

func newLinerReader() *linerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &linerReader{state: state}
}

// ReadLine treats Ctrl-C like Ctrl-D: both end the input.
func (l *linerReader) ReadLine() (line string, err error) {
	// prompts are printed by Term so they can be colored
	line, err = l.state.Prompt("")
	if errors.Is(err, liner.ErrPromptAborted) {
		err = io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}
	return
}

func (l *linerReader) Close() error {
	return l.state.Close()
}

// Term is the operator-facing side of a session: colored output on one
// side and line input on the other.
type Term struct {
	in        LineReader
	out       io.Writer
	renderer  *lipgloss.Renderer
	assistant lipgloss.Style
	user      lipgloss.Style
	// stream colors raw fragments; lipgloss would pad multi-line
	// fragments to a common width
	stream termenv.Style
}

// NewTerm returns a Term that reads from in and writes to out.  Colors
// are only emitted when out is a color-capable terminal.
func NewTerm(in LineReader, out io.Writer) *Term {
	r := lipgloss.NewRenderer(out)
	return &Term{
		in:        in,
		out:       out,
		renderer:  r,
		assistant: r.NewStyle().Foreground(lipgloss.Color("4")),
		user:      r.NewStyle().Foreground(lipgloss.Color("2")),
		stream:    r.ColorProfile().String().Foreground(r.ColorProfile().Color("4")),
	}
}

// Close releases the line reader.
func (t *Term) Close() error {
	return t.in.Close()
}

// Say prints msg as a block spoken by the assistant.
func (t *Term) Say(msg string) {
	Fpf(t.out, "\n%s\n%s\n\n", t.assistant.Render(AssistantName), t.assistant.Render(msg))
}

// SayHighlighted is Say with a highlighted word between prefix and
// suffix.
func (t *Term) SayHighlighted(prefix, word, suffix string) {
	Fpf(t.out, "\n%s\n%s%s%s\n\n",
		t.assistant.Render(AssistantName),
		t.assistant.Render(prefix),
		t.user.Render(word),
		t.assistant.Render(suffix))
}

// Ask prints question and reads the answer.
func (t *Term) Ask(question string) (string, error) {
	Fpf(t.out, "%s\n", t.assistant.Render(question))
	return t.in.ReadLine()
}

// AskAsUser prints question followed by the operator heading and
// reads the answer.
func (t *Term) AskAsUser(question string) (string, error) {
	Fpf(t.out, "%s\n\n%s\n", t.assistant.Render(question), t.user.Render(UserName))
	return t.in.ReadLine()
}

// ReadUser prints the operator heading and reads one line.
func (t *Term) ReadUser() (line string, err error) {
	Fpf(t.out, "%s\n", t.user.Render(UserName))
	line, err = t.in.ReadLine()
	if err != nil {
		return
	}
	Fpf(t.out, "\n")
	return
}

// BeginReply prints the assistant heading above a streamed reply.
func (t *Term) BeginReply() {
	Fpf(t.out, "%s\n", t.assistant.Render(AssistantName))
}

// Fragment echoes one streamed fragment immediately.
func (t *Term) Fragment(frag string) {
	Fpf(t.out, "%s", t.stream.Styled(frag))
}

// EndReply terminates a streamed reply.
func (t *Term) EndReply() {
	Fpf(t.out, "\n\n")
}

// catalogColumns are the catalog table headers and their widths.
var catalogColumns = []struct {
	title string
	width int
	color string
}{
	{"Index", 10, "1"},
	{"Key", 30, "2"},
	{"Name", 25, "3"},
	{"Tokens", 15, "5"},
	{"Training Data", 20, "2"},
	{"Description", 60, "3"},
}

// ShowCatalog prints the catalog as a table with 1-based indices.
func (t *Term) ShowCatalog(c *Catalog) {
	var headers []string
	for _, col := range catalogColumns {
		headers = append(headers, col.title)
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := t.renderer.NewStyle().Width(catalogColumns[col].width).Padding(0, 1)
			if row == table.HeaderRow {
				s = s.Foreground(lipgloss.Color(catalogColumns[col].color))
			}
			return s
		})
	for i, m := range c.Models() {
		tbl.Row(strconv.Itoa(i+1), m.Key, m.Name, strconv.Itoa(m.Tokens), m.TrainingData, m.Description)
	}
	Fpf(t.out, "%s\n\n\n", tbl.String())
}
