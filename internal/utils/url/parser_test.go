package urlutil

import "testing"

func TestValidate(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://www.seek.com.au/full-stack-jobs/in-Sydney",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Fatalf("expected valid, got error: %v", err)
		}
	}

	invalid := []string{"ftp://example.com", "//example.com", "http:///"}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Fatalf("expected invalid for %s", u)
		}
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"https://au.indeed.com/jobs?q=go", "/viewjob?jk=1", "https://au.indeed.com/viewjob?jk=1"},
		{"https://www.seek.com.au/jobs", "https://other.com/x", "https://other.com/x"},
		{"https://www.seek.com.au/a/b", "c", "https://www.seek.com.au/a/c"},
	}
	for _, tt := range tests {
		if got := ResolveURL(tt.base, tt.href); got != tt.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}

func TestResolveHTTP(t *testing.T) {
	base := "https://www.linkedin.com/jobs/search?keywords=go"
	tests := []struct {
		href, want string
		ok         bool
	}{
		{"/jobs/view/1", "https://www.linkedin.com/jobs/view/1", true},
		{"https://au.linkedin.com/jobs/view/2", "https://au.linkedin.com/jobs/view/2", true},
		{"/jobs/view/%zz", "", false},
		{"javascript:void(0)", "", false},
		{"mailto:jobs@example.com", "", false},
		{"http:///nohost", "", false},
	}
	for _, tt := range tests {
		got, ok := ResolveHTTP(base, tt.href)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ResolveHTTP(%q) = %q, %v, want %q, %v", tt.href, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIncrementQueryInt(t *testing.T) {
	got, err := IncrementQueryInt("https://www.linkedin.com/jobs/search?keywords=Go", "start", 25)
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://www.linkedin.com/jobs/search?keywords=Go&start=25" {
		t.Errorf("unexpected url %s", got)
	}

	got, _ = IncrementQueryInt(got, "start", 25)
	if got != "https://www.linkedin.com/jobs/search?keywords=Go&start=50" {
		t.Errorf("unexpected url %s", got)
	}
}

func TestSlug(t *testing.T) {
	if got := Slug("  Full Stack  Developer "); got != "full-stack-developer" {
		t.Errorf("Slug = %q", got)
	}
}

func TestSame(t *testing.T) {
	if !Same("https://X.com/jobs/?b=2&a=1#top", "https://x.com/jobs?a=1&b=2") {
		t.Error("expected equal URLs")
	}
	if Same("https://x.com/jobs?page=1", "https://x.com/jobs?page=2") {
		t.Error("expected different URLs")
	}
}
