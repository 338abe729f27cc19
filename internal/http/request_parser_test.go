package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"retiresaveup/internal/core"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"wage": 50000, "transactions": []}`, ""},
		{"unknown fields ignored", `{"wage": 1, "extra": true}`, ""},
		{"empty", ``, "request body is empty"},
		{"syntax", `{"wage": }`, "malformed JSON"},
		{"truncated", `{"wage": 1`, "malformed JSON"},
		{"wrong type", `{"wage": "lots"}`, `field "wage" must be of type float64`},
		{"trailing value", `{"wage": 1} {"wage": 2}`, "single JSON value"},
		{"too large", `{"wage": 1, "pad": "` + strings.Repeat("x", MaxBodyBytes) + `"}`, "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var in core.ValidationInput
			err := DecodeJSON(w, r, &in)

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestUserID(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"missing", "", AnonymousUser, false},
		{"trimmed", "  alice  ", "alice", false},
		{"control char", "ali\x01ce", "", true},
		{"too long", strings.Repeat("u", 129), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set(HeaderUserID, tt.header)
			}
			got, err := UserID(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("UserID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 50, false},
		{"?limit=10", 10, false},
		{"?limit=9999", 500, false},
		{"?limit=0", 0, true},
		{"?limit=-3", 0, true},
		{"?limit=ten", 0, true},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/history"+tt.query, nil)
		got, err := ParseLimit(r)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: err = %v, wantErr %v", tt.query, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: limit = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00.000"},
		{1500 * time.Millisecond, "00:00:01.500"},
		{time.Hour + 2*time.Minute + 3*time.Second + 45*time.Millisecond, "01:02:03.045"},
		{26 * time.Hour, "26:00:00.000"},
		{-time.Second, "00:00:00.000"},
	}
	for _, tt := range tests {
		if got := formatUptime(tt.d); got != tt.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatMegabytes(t *testing.T) {
	if got := formatMegabytes(3 * 1024 * 1024 / 2); got != "1.50 MB" {
		t.Errorf("formatMegabytes = %q", got)
	}
}
