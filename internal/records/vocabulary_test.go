package records

import "testing"

func TestMapStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"answered call", StatusAnswered, true},
		{"ANSWERED", StatusAnswered, true},
		{"  not answered  ", StatusNotAnswered, true},
		{"silent call/voicemail", StatusVoicemail, true},
		{"invalid number", StatusInvalidNumber, true},
		{"", "", true},
		{"ghosted", "", false},
	}
	for _, c := range cases {
		got, ok := MapStatus(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("MapStatus(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestMapSalesStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Sold", SalesConverted, true},
		{"deal won", SalesConverted, true},
		{"Not Interested (N)", SalesNotInterested, true},
		{"f", SalesFollowUp, true},
		{"FOLLOW UP", SalesFollowUp, true},
		{"", "", true},
		{"thinking about it", "", false},
	}
	for _, c := range cases {
		got, ok := MapSalesStatus(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("MapSalesStatus(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestDisplayTitleKeepsExceptions(t *testing.T) {
	if got := DisplayTitle("not answered"); got != StatusNotAnswered {
		t.Fatalf("DisplayTitle(not answered) = %q", got)
	}
	if got := DisplayTitle("follow up"); got != SalesFollowUp {
		t.Fatalf("DisplayTitle(follow up) = %q", got)
	}
	if got := DisplayTitle("converted"); got != SalesConverted {
		t.Fatalf("DisplayTitle(converted) = %q", got)
	}
}
