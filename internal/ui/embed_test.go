package ui

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestRender_WaitlistPage(t *testing.T) {
	tmpl, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name    string
		data    PageData
		want    []string
		notWant []string
	}{
		{
			name: "same origin",
			data: PageData{SiteName: "Unbounded"},
			want: []string{
				`data-api-base=""`,
				`type="email"`,
				"required",
				`src="/static/waitlist.js"`,
				"Unbounded",
			},
		},
		{
			name: "external api base",
			data: PageData{SiteName: "Unbounded", APIBase: "https://api.example.com"},
			want: []string{`data-api-base="https://api.example.com"`},
		},
		{
			name:    "site name is escaped",
			data:    PageData{SiteName: "<script>x</script>"},
			want:    []string{"&lt;script&gt;"},
			notWant: []string{"<script>x</script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tmpl.Render(&buf, PageWaitlist, tt.data); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			body := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(body, s) {
					t.Errorf("page missing %q", s)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(body, s) {
					t.Errorf("page unexpectedly contains %q", s)
				}
			}
		})
	}
}

func TestRender_LandingLinksToForm(t *testing.T) {
	tmpl, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Render(&buf, PageLanding, PageData{SiteName: "Unbounded"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), `href="/waitlist"`) {
		t.Error("landing page does not link to /waitlist")
	}
}

func TestFS_ServesScript(t *testing.T) {
	f, err := FS().Open("waitlist.js")
	if err != nil {
		t.Fatalf("Open(waitlist.js) error = %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	script := string(data)
	for _, s := range []string{"Sending...", "Notified!", "/api/waitlist", "data-api-base"} {
		if !strings.Contains(script, s) {
			t.Errorf("waitlist.js missing %q", s)
		}
	}
}
