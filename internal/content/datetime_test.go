package content

import (
	"errors"
	"testing"
	"time"
)

func TestParseZoned(t *testing.T) {
	t.Parallel()

	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		want     time.Time
		wantZone string
		wantErr  bool
	}{
		{
			name:     "offset and iana zone",
			input:    "2024-03-05T10:00:00+01:00[Europe/Paris]",
			want:     time.Date(2024, 3, 5, 10, 0, 0, 0, paris),
			wantZone: "Europe/Paris",
		},
		{
			name:     "summer offset",
			input:    "2024-07-01T08:30:00+02:00[Europe/Paris]",
			want:     time.Date(2024, 7, 1, 8, 30, 0, 0, paris),
			wantZone: "Europe/Paris",
		},
		{
			name:     "no offset",
			input:    "2024-03-05T10:00:00[Europe/Paris]",
			want:     time.Date(2024, 3, 5, 10, 0, 0, 0, paris),
			wantZone: "Europe/Paris",
		},
		{
			name:     "minutes only",
			input:    "2024-03-05T10:00[Europe/Paris]",
			want:     time.Date(2024, 3, 5, 10, 0, 0, 0, paris),
			wantZone: "Europe/Paris",
		},
		{
			name:     "fixed offset annotation",
			input:    "2024-03-05T10:00:00-05:00[-05:00]",
			want:     time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC),
			wantZone: "-05:00",
		},
		{
			name:     "utc",
			input:    "2024-03-05T10:00:00Z[UTC]",
			want:     time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
			wantZone: "UTC",
		},
		{name: "missing annotation", input: "2024-03-05T10:00:00+01:00", wantErr: true},
		{name: "offset disagrees with zone", input: "2024-03-05T10:00:00+05:00[Europe/Paris]", wantErr: true},
		{name: "unknown zone", input: "2024-03-05T10:00:00[Mars/Olympus]", wantErr: true},
		{name: "local zone rejected", input: "2024-03-05T10:00:00[Local]", wantErr: true},
		{name: "bad offset", input: "2024-03-05T10:00:00[+25:00]", wantErr: true},
		{name: "date only", input: "2024-03-05[Europe/Paris]", wantErr: true},
		{name: "garbage", input: "yesterday[UTC]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseZoned(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateTime) {
					t.Errorf("ParseZoned(%q) error = %v, want ErrInvalidDateTime", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseZoned(%q) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseZoned(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.Location().String() != tt.wantZone {
				t.Errorf("location = %q, want %q", got.Location(), tt.wantZone)
			}
		})
	}
}
