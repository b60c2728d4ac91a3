package docext

import (
	"strings"
	"testing"
)

func TestFromHTML_VisibleTextOnly(t *testing.T) {
	input := `<html><head><title>ignored</title><style>p {color: red}</style></head>
<body><p>Client: John Smith</p><script>alert("nope")</script>
<p>Date of Loss: 2024-03-15</p></body></html>`

	got, err := FromHTML(input)
	if err != nil {
		t.Fatalf("FromHTML returned error: %v", err)
	}

	if !strings.Contains(got, "Client: John Smith") {
		t.Errorf("Expected visible text, got %q", got)
	}
	if strings.Contains(got, "alert") || strings.Contains(got, "color") {
		t.Errorf("Expected script and style content to be dropped, got %q", got)
	}
}

func TestFromHTML_BlockElementsKeepLabelsLineOriented(t *testing.T) {
	input := `<div>Attorney: Jane Roe</div><div>Email: jane@firm.law</div>`

	got, err := FromHTML(input)
	if err != nil {
		t.Fatalf("FromHTML returned error: %v", err)
	}

	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("Expected block elements on separate lines, got %q", got)
	}
	if !strings.HasPrefix(lines[0], "Attorney:") {
		t.Errorf("Expected first line to carry the attorney label, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Email:") {
		t.Errorf("Expected second line to carry the email label, got %q", lines[1])
	}
}

func TestFromHTML_CollapsesBlankLines(t *testing.T) {
	input := `<p>one</p><p></p><p></p><p>two</p>`

	got, err := FromHTML(input)
	if err != nil {
		t.Fatalf("FromHTML returned error: %v", err)
	}

	if strings.Contains(got, "\n\n\n") {
		t.Errorf("Expected blank-line runs collapsed, got %q", got)
	}
	if !strings.Contains(got, "one") || !strings.Contains(got, "two") {
		t.Errorf("Expected both paragraphs, got %q", got)
	}
}

func TestDecodeLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain text`, "plain text"},
		{`paren \( inside \)`, "paren ( inside )"},
		{`tab\there`, "tab\there"},
		{`octal\040space`, "octal space"},
		{`back\\slash`, `back\slash`},
	}

	for _, tt := range tests {
		if got := decodeLiteral([]byte(tt.in)); got != tt.want {
			t.Errorf("decodeLiteral(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextFromStream(t *testing.T) {
	stream := []byte("BT\n(Hello ) Tj\n[(World)] TJ\nT*\n(next line) Tj\nET")

	got := textFromStream(stream)

	if !strings.Contains(got, "Hello World") {
		t.Errorf("Expected show-text operators joined, got %q", got)
	}
	if !strings.Contains(got, "next line") {
		t.Errorf("Expected T* to keep subsequent text, got %q", got)
	}
}

func TestFromPDF_InvalidInput(t *testing.T) {
	if _, err := FromPDF([]byte("not a pdf")); err == nil {
		t.Error("Expected an error for non-PDF input")
	}
}
