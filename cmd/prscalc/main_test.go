package main

import (
	"reflect"
	"testing"

	"github.com/carbocation/prscalc/prsparser"
)

func TestParseDelimiter(t *testing.T) {
	for input, expected := range map[string]rune{
		"tab":    '\t',
		`\t`:     '\t',
		"detect": 0,
		",":      ',',
		" ":      ' ',
		";":      ';',
		"#":      '#',
	} {
		got, err := parseDelimiter(input)
		if err != nil {
			t.Errorf("%q: %v", input, err)
			continue
		}
		if got != expected {
			t.Errorf("%q: got %q, expected %q", input, got, expected)
		}
	}

	for _, input := range []string{"", "ab"} {
		if _, err := parseDelimiter(input); err == nil {
			t.Errorf("%q: expected an error", input)
		}
	}
}

func TestParseComment(t *testing.T) {
	for input, expected := range map[string]rune{
		"":  0,
		"#": '#',
		";": ';',
	} {
		got, err := parseComment(input)
		if err != nil {
			t.Errorf("%q: %v", input, err)
			continue
		}
		if got != expected {
			t.Errorf("%q: got %q, expected %q", input, got, expected)
		}
	}

	for _, input := range []string{"##", "\t", "\""} {
		if _, err := parseComment(input); err == nil {
			t.Errorf("%q: expected an error", input)
		}
	}
}

func TestCustomLayout(t *testing.T) {
	for _, v := range []struct {
		Delimiter string
		Comment   string
		Expected  prsparser.Layout
	}{
		// No comment character unless one is asked for, so a "#CHROM"
		// header line is still read as the header
		{"tab", "", prsparser.Layout{Delimiter: '\t', ColSNP: "ID", ColScore: "BETA"}},
		{"detect", "", prsparser.Layout{ColSNP: "ID", ColScore: "BETA"}},
		{",", "#", prsparser.Layout{Delimiter: ',', Comment: '#', ColSNP: "ID", ColScore: "BETA"}},
		{"#", "", prsparser.Layout{Delimiter: '#', ColSNP: "ID", ColScore: "BETA"}},
	} {
		got, err := customLayout("ID", "BETA", v.Delimiter, v.Comment)
		if err != nil {
			t.Errorf("%q/%q: %v", v.Delimiter, v.Comment, err)
			continue
		}
		if !reflect.DeepEqual(got, v.Expected) {
			t.Errorf("%q/%q: got %+v, expected %+v", v.Delimiter, v.Comment, got, v.Expected)
		}
	}

	if _, err := customLayout("ID", "BETA", ";", ";"); err == nil {
		t.Error("expected an error when the delimiter and comment match")
	}
}
