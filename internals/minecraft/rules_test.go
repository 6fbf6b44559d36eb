package minecraft

import (
	"testing"

	"github.com/minepkg/minelaunch/internals/platform"
)

func TestAllowed(t *testing.T) {
	linux := platform.New("linux", "amd64", "6.1.0")
	windows := platform.New("windows", "amd64", "10.0")
	osx := platform.New("darwin", "arm64", "10.5.8")
	linux32 := platform.New("linux", "386", "5.0")

	type args struct {
		rules    []Rule
		platform platform.Info
		features Features
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{
			name: "no rules",
			args: args{platform: linux},
			want: true,
		},
		{
			name: "allow empty",
			args: args{rules: []Rule{{Action: "allow"}}, platform: linux},
			want: true,
		},
		{
			name: "disallow empty",
			args: args{rules: []Rule{{Action: "disallow"}}, platform: linux},
			want: false,
		},
		{
			name: "allow osx only on linux",
			args: args{rules: []Rule{{Action: "allow", OS: &OS{Name: "osx"}}}, platform: linux},
			want: false,
		},
		{
			name: "allow osx only on osx",
			args: args{rules: []Rule{{Action: "allow", OS: &OS{Name: "osx"}}}, platform: osx},
			want: true,
		},
		{
			name: "allow all but osx on windows",
			args: args{
				rules: []Rule{
					{Action: "allow"},
					{Action: "disallow", OS: &OS{Name: "osx"}},
				},
				platform: windows,
			},
			want: true,
		},
		{
			name: "allow all but osx on osx",
			args: args{
				rules: []Rule{
					{Action: "allow"},
					{Action: "disallow", OS: &OS{Name: "osx"}},
				},
				platform: osx,
			},
			want: false,
		},
		{
			name: "last matching rule wins",
			args: args{
				rules: []Rule{
					{Action: "disallow"},
					{Action: "allow", OS: &OS{Name: "linux"}},
				},
				platform: linux,
			},
			want: true,
		},
		{
			name: "version regex matches",
			args: args{
				rules:    []Rule{{Action: "allow", OS: &OS{Name: "osx", Version: `^10\.5\.\d$`}}},
				platform: osx,
			},
			want: true,
		},
		{
			name: "version regex does not match",
			args: args{
				rules:    []Rule{{Action: "allow", OS: &OS{Name: "windows", Version: `^11\.`}}},
				platform: windows,
			},
			want: false,
		},
		{
			name: "invalid version regex never applies",
			args: args{
				rules: []Rule{
					{Action: "allow"},
					{Action: "disallow", OS: &OS{Version: `(`}},
				},
				platform: linux,
			},
			want: true,
		},
		{
			name: "arch x86 on 32 bit",
			args: args{rules: []Rule{{Action: "allow", OS: &OS{Arch: "x86"}}}, platform: linux32},
			want: true,
		},
		{
			name: "arch x86 on 64 bit",
			args: args{rules: []Rule{{Action: "allow", OS: &OS{Arch: "x86"}}}, platform: linux},
			want: false,
		},
		{
			name: "feature enabled",
			args: args{
				rules:    []Rule{{Action: "allow", Features: map[string]bool{"is_demo_user": true}}},
				platform: linux,
				features: Features{"is_demo_user": true},
			},
			want: true,
		},
		{
			name: "feature absent",
			args: args{
				rules:    []Rule{{Action: "allow", Features: map[string]bool{"has_custom_resolution": true}}},
				platform: linux,
			},
			want: false,
		},
		{
			name: "feature required false and absent",
			args: args{
				rules:    []Rule{{Action: "allow", Features: map[string]bool{"is_demo_user": false}}},
				platform: linux,
			},
			want: true,
		},
		{
			name: "all features must match",
			args: args{
				rules: []Rule{{Action: "allow", Features: map[string]bool{
					"is_demo_user":          true,
					"has_custom_resolution": true,
				}}},
				platform: linux,
				features: Features{"is_demo_user": true},
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.args.rules, tt.args.platform, tt.args.features); got != tt.want {
				t.Errorf("Allowed() = %v, want %v", got, tt.want)
			}
		})
	}
}
