package logparser

import "testing"

func TestParseLine(t *testing.T) {
	tests := []struct {
		name        string
		arg         string
		wantGarbage bool
		wantTag     string
		wantMessage string
	}{
		{
			name:        "crap",
			arg:         "I am crap string",
			wantGarbage: true,
			wantMessage: "I am crap string",
		},
		{
			name:        "forge",
			arg:         "[13:46:33] [main/INFO] [FML]: Forge bla bla for Minecraft 1.12.2 loading",
			wantTag:     "FML",
			wantMessage: "Forge bla bla for Minecraft 1.12.2 loading",
		},
		{
			name:        "vanilla",
			arg:         "[10:01:02] [Render thread/INFO]: Setting user: Player",
			wantMessage: "Setting user: Player",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.arg)
			if got.Garbage != tt.wantGarbage {
				t.Fatalf("Garbage = %v, want %v", got.Garbage, tt.wantGarbage)
			}
			if got.Tag != tt.wantTag || got.Message != tt.wantMessage {
				t.Errorf("got tag %q message %q", got.Tag, got.Message)
			}
			if !got.Garbage && got.String() != tt.arg {
				t.Errorf("String() = %q, want %q", got.String(), tt.arg)
			}
		})
	}
}

func TestTable_Classify(t *testing.T) {
	tests := []struct {
		table Table
		line  string
		want  Kind
	}{
		{GameTable, "[10:01:02] [Render thread/INFO]: Setting user: Player", GameStarted},
		{GameTable, "[10:01:02] [Render thread/INFO]: Backend library: LWJGL version 3.3.1", GameStarted},
		{GameTable, "#@!@# Game crashed! Crash report saved to: #@!@# /tmp/crash.txt", GameCrashed},
		{GameTable, "[10:01:02] [Worker-Main-1/INFO]: Loaded 7 recipes", Unmatched},
		{ForgeInstallerTable, "The client installed successfully, you should now be able to run the file", InstallSucceeded},
		{ForgeInstallerTable, "There was an error during installation", InstallFailed},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := tt.table.Classify(tt.line); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}
