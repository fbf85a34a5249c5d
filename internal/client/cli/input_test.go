package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("a\nb\n\n\n"))
	var out bytes.Buffer
	got, err := GetMultiline(in, "Enter text", &out)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nb"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetWithDefault(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		def      string
		expected string
		prompt   string
	}{
		{name: "empty line takes default", input: "\n", def: "4", expected: "4", prompt: "Scale [4]\n> "},
		{name: "value overrides default", input: " 6 \n", def: "4", expected: "6", prompt: "Scale [4]\n> "},
		{name: "no default", input: "\n", def: "", expected: "", prompt: "Scale\n> "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetWithDefault(rdr(tc.input), "Scale", tc.def, &out)
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
			require.Equal(t, tc.prompt, out.String())
		})
	}
}

func TestGetWithDefault_EOF(t *testing.T) {
	var out bytes.Buffer
	_, err := GetWithDefault(rdr(""), "Scale", "4", &out)
	require.ErrorIs(t, err, io.EOF)
}
