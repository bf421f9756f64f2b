package fdinherit

import "testing"

func TestParseBarePort(t *testing.T) {
	entries, err := Parse("5000=3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Kind != KindTCP || entries[0].Port != 5000 || entries[0].FD != 3 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestParseHostPort(t *testing.T) {
	entries, err := Parse("127.0.0.1:8080=4")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Entry{Kind: KindTCP, Host: "127.0.0.1", Port: 8080, FD: 4}
	if entries[0] != want {
		t.Fatalf("entries[0] = %+v, want %+v", entries[0], want)
	}
}

func TestParseIPv6(t *testing.T) {
	entries, err := Parse("[::1]:9090=5")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Entry{Kind: KindTCP6, Host: "::1", Port: 9090, FD: 5}
	if entries[0] != want {
		t.Fatalf("entries[0] = %+v, want %+v", entries[0], want)
	}
}

func TestParseUnixPath(t *testing.T) {
	entries, err := Parse("/var/run/app.sock=6")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Entry{Kind: KindUnix, Path: "/var/run/app.sock", FD: 6}
	if entries[0] != want {
		t.Fatalf("entries[0] = %+v, want %+v", entries[0], want)
	}
}

func TestParseMultipleEntriesFirstWins(t *testing.T) {
	entry, err := First("5000=3,6000=4")
	if err != nil {
		t.Fatalf("First() error = %v", err)
	}
	if entry.Port != 5000 || entry.FD != 3 {
		t.Fatalf("entry = %+v, want the first entry", entry)
	}
}

func TestParseEmptyIsError(t *testing.T) {
	if _, err := Parse(""); err != ErrNoEntries {
		t.Fatalf("err = %v, want ErrNoEntries", err)
	}
}

func TestParseMalformedEntry(t *testing.T) {
	cases := []string{"nofd", "abc=3", "5000=notanumber", "[::1=3"}
	for _, c := range cases {
		if _, err := Parse(c); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", c)
		}
	}
}
