package engine

import (
	"reflect"
	"testing"
)

func TestResolveTarget(t *testing.T) {
	t.Parallel()

	contacts := map[string]string{
		"Mom":      "+919876543210",
		"Mohammed": "+919876500001",
		"Mohan":    "+919876500002",
		"John Doe": "+15551234567",
	}

	testCases := []struct {
		name string
		in   string
		want Resolution
	}{
		{
			name: "exact match",
			in:   "Mom",
			want: Resolution{Status: StatusResolved, Name: "Mom", Phone: "+919876543210"},
		},
		{
			name: "exact match ignores case",
			in:   "john doe",
			want: Resolution{Status: StatusResolved, Name: "John Doe", Phone: "+15551234567"},
		},
		{
			name: "phone number passes through",
			in:   "+919812345678",
			want: Resolution{Status: StatusResolved, Name: "+919812345678", Phone: "+919812345678"},
		},
		{
			name: "phone with punctuation is cleaned",
			in:   "+91 98123-45678",
			want: Resolution{Status: StatusResolved, Name: "+919812345678", Phone: "+919812345678"},
		},
		{
			name: "single fuzzy match",
			in:   "Moham",
			want: Resolution{Status: StatusResolvedFuzzy, Name: "Mohammed", Phone: "+919876500001"},
		},
		{
			name: "ambiguous fragment",
			in:   "Moh",
			want: Resolution{Status: StatusAmbiguous, Candidates: []string{"Mohammed", "Mohan"}},
		},
		{
			name: "no match",
			in:   "Zara",
			want: Resolution{Status: StatusNotFound},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ResolveTarget(tc.in, contacts)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ResolveTarget(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSplitWhatsAppCommand(t *testing.T) {
	t.Parallel()

	contacts := map[string]string{
		"Mom":      "+919876543210",
		"John Doe": "+15551234567",
	}

	testCases := []struct {
		name        string
		command     string
		wantTarget  string
		wantMessage string
		wantOK      bool
	}{
		{
			name:        "colon separator",
			command:     "send whatsapp to John Doe : Hello there",
			wantTarget:  "John Doe",
			wantMessage: "Hello there",
			wantOK:      true,
		},
		{
			name:        "colon with short form",
			command:     "whatsapp Mom : On my way home",
			wantTarget:  "Mom",
			wantMessage: "On my way home",
			wantOK:      true,
		},
		{
			name:        "contact name without colon",
			command:     "send whatsapp to Mom I will be late",
			wantTarget:  "Mom",
			wantMessage: "I will be late",
			wantOK:      true,
		},
		{
			name:        "two word contact without colon",
			command:     "message John Doe meeting moved to 5",
			wantTarget:  "John Doe",
			wantMessage: "meeting moved to 5",
			wantOK:      true,
		},
		{
			name:        "phone number without colon",
			command:     "send message +919812345678 see you soon",
			wantTarget:  "+919812345678",
			wantMessage: "see you soon",
			wantOK:      true,
		},
		{
			name:        "unknown name falls back to first word",
			command:     "whatsapp Ravi lunch at noon",
			wantTarget:  "Ravi",
			wantMessage: "lunch at noon",
			wantOK:      true,
		},
		{
			name:    "nothing left after keywords",
			command: "send whatsapp",
			wantOK:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			target, message, ok := splitWhatsAppCommand(tc.command, contacts)
			if ok != tc.wantOK {
				t.Fatalf("splitWhatsAppCommand(%q) ok = %v, want %v", tc.command, ok, tc.wantOK)
			}
			if !tc.wantOK {
				return
			}
			if target != tc.wantTarget || message != tc.wantMessage {
				t.Errorf("splitWhatsAppCommand(%q) = (%q, %q), want (%q, %q)",
					tc.command, target, message, tc.wantTarget, tc.wantMessage)
			}
		})
	}
}

func TestWhatsAppDigits(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		phone string
		want  string
	}{
		{
			name:  "plus prefix stripped",
			phone: "+919876543210",
			want:  "919876543210",
		},
		{
			name:  "bare ten digits get country code",
			phone: "9876543210",
			want:  "919876543210",
		},
		{
			name:  "eleven digits left alone",
			phone: "19876543210",
			want:  "19876543210",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := whatsappDigits(tc.phone, "+91"); got != tc.want {
				t.Errorf("whatsappDigits(%q) = %q, want %q", tc.phone, got, tc.want)
			}
		})
	}
}
