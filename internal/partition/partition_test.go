package partition

import (
	"errors"
	"testing"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "timestamp wins over date",
			path: "/iplant/home/shared/phytooracle/season_11_sorghum_yr_2020/level_2/stereoTop/2020-06-15/scan_2020-06-15__12-30-00-000_ortho.tif",
			want: "2020-06-15__12-30-00-000",
		},
		{
			name: "timestamp directory",
			path: "/season_10/level_0/flirIrCamera/flirIrCamera-2020-02-14__11-47-32-345.tar.gz",
			want: "2020-02-14__11-47-32-345",
		},
		{
			name: "plain date only",
			path: "/season_12/level_1/stereoTop/2021-09-13/bin2tif_out.tar",
			want: "2021-09-13",
		},
		{
			name: "first date wins",
			path: "/a/2021-09-13/b_2021-09-14.tif",
			want: "2021-09-13",
		},
		{
			name: "invalid date skipped for a later valid one",
			path: "/a/2020-13-45/b_2020-06-15.tif",
			want: "2020-06-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Key(tt.path)
			if err != nil {
				t.Fatalf("Key() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey_NoDateToken(t *testing.T) {
	for _, p := range []string{
		"/season_11/level_2/stereoTop/summary/ortho.tif",
		"/season_11/level_2/stereoTop/2020-6-15/ortho.tif",
		"/season_11/level_2/stereoTop/2020-13-45/ortho.tif",
		"/season_11/level_2/stereoTop/2020-13-45/ortho_2021-02-30.tif",
		"",
	} {
		_, err := Key(p)
		if !errors.Is(err, ErrNoDateToken) {
			t.Errorf("Key(%q) error = %v, want ErrNoDateToken", p, err)
		}
	}
}
