package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "simple contact line",
			text: "contact: a@b.com",
			want: "a@b.com",
		},
		{
			name: "no email present",
			text: "no email here",
			want: "",
		},
		{
			name: "empty input",
			text: "",
			want: "",
		},
		{
			name: "first match wins when multiple addresses present",
			text: "Reach jane@acme.com or fallback hr@acme.com for details.",
			want: "jane@acme.com",
		},
		{
			name: "embedded in recruiter line",
			text: "About the role.\nRecruiter: jane.doe+jobs@acme-corp.io\nApply now.",
			want: "jane.doe+jobs@acme-corp.io",
		},
		{
			name: "at-sign without domain is not an email",
			text: "ping me @jane on slack",
			want: "",
		},
		{
			name: "single-letter TLD rejected",
			text: "weird a@b.c string",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.text))
		})
	}
}

func TestCompanyName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "labeled company line",
			text: "We are hiring!\nCompany: Acme Corp\nGreat benefits.",
			want: "Acme Corp",
		},
		{
			name: "labeled employer line",
			text: "Employer: Initech, Inc.\nRole details below.",
			want: "Initech, Inc.",
		},
		{
			name: "first line heuristic",
			text: "Acme Corp\nWe build everything.",
			want: "Acme Corp",
		},
		{
			name: "first line with for delimiter keeps company part",
			text: "Acme Corp for Data Analyst\nDetails follow.",
			want: "Acme Corp",
		},
		{
			name: "first line too long is rejected",
			text: "This opening is a rare chance to join a fast growing team of builders\nCompany details omitted.",
			want: "",
		},
		{
			name: "first line mentioning job description is rejected",
			text: "Job Description for Analyst\nAcme Corp is hiring.",
			want: "",
		},
		{
			name: "empty input",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompanyName(tt.text))
		})
	}
}

func TestJobTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "labeled job title line",
			text: "Company: Acme\nJob Title: Senior Data Analyst\nApply today.",
			want: "Senior Data Analyst",
		},
		{
			name: "labeled role line",
			text: "Role: Backend Engineer\nRemote friendly.",
			want: "Backend Engineer",
		},
		{
			name: "first line with at delimiter keeps title part",
			text: "Data Analyst at Acme Corp\nDetails follow.",
			want: "Data Analyst",
		},
		{
			name: "short first line without delimiter",
			text: "Quality Data Analyst\nTrust and Safety team.",
			want: "Quality Data Analyst",
		},
		{
			name: "long prose first line is rejected",
			text: "We are looking for someone who loves data and wants to grow with us\nmore text.",
			want: "",
		},
		{
			name: "empty input",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JobTitle(tt.text))
		})
	}
}
