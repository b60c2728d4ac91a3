package intake

import "testing"

func TestIsLegalCase(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		sender  string
		want    bool
	}{
		{
			name:    "two keywords in subject and body",
			subject: "New personal injury case",
			body:    "Please find the police report attached.",
			sender:  "someone@example.com",
			want:    true,
		},
		{
			name:    "single keyword is not enough",
			subject: "Quick question about my case",
			body:    "Can we meet on Tuesday?",
			sender:  "someone@example.com",
			want:    false,
		},
		{
			name:    "law firm sender passes with no keywords",
			subject: "Following up",
			body:    "See below.",
			sender:  "jane@levinelaw.com",
			want:    true,
		},
		{
			name:    "dot-law domain passes",
			subject: "Hello",
			body:    "",
			sender:  "contact@roe.law",
			want:    true,
		},
		{
			name:    "keywords matched case-insensitively",
			subject: "AUTO ACCIDENT - INSURANCE claim",
			body:    "",
			sender:  "someone@example.com",
			want:    true,
		},
		{
			name:    "newsletter is filtered",
			subject: "Weekly digest",
			body:    "Top stories this week.",
			sender:  "news@updates.example.com",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLegalCase(tt.subject, tt.body, tt.sender); got != tt.want {
				t.Errorf("IsLegalCase(%q, %q, %q) = %v, want %v", tt.subject, tt.body, tt.sender, got, tt.want)
			}
		})
	}
}
