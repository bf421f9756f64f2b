package linebuf

import (
	"bufio"
	"bytes"
	"reflect"
	"testing"
)

func TestScanLenientAllLineEndings(t *testing.T) {
	input := "a\r\nb\rc\nd"
	scanner := bufio.NewScanner(bytes.NewBufferString(input))
	scanner.Split(ScanLenient)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
}

func TestScanLenientTrailingCR(t *testing.T) {
	scanner := bufio.NewScanner(bytes.NewBufferString("only\r"))
	scanner.Split(ScanLenient)

	if !scanner.Scan() {
		t.Fatalf("expected one token, scanner stopped: %v", scanner.Err())
	}
	if got := scanner.Text(); got != "only" {
		t.Fatalf("token = %q, want %q", got, "only")
	}
}

func TestIndexCRLFIgnoresBareMarkers(t *testing.T) {
	if i := IndexCRLF([]byte("GET / HTTP/1.1\nHost: x\r\n")); i != 22 {
		t.Fatalf("IndexCRLF = %d, want 22", i)
	}
	if i := IndexCRLF([]byte("no terminator here")); i != -1 {
		t.Fatalf("IndexCRLF = %d, want -1", i)
	}
}

func TestIndexDoubleCRLF(t *testing.T) {
	data := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\nbody")
	idx := IndexDoubleCRLF(data)
	if idx == -1 {
		t.Fatalf("IndexDoubleCRLF did not find the header terminator")
	}
	if string(data[idx+4:]) != "body" {
		t.Fatalf("IndexDoubleCRLF mis-located the terminator: remainder %q", data[idx+4:])
	}
}
