package pattern

import (
	"testing"

	"github.com/xdg/cmdgate/internal/shell"
)

func TestMatches_Prefix(t *testing.T) {
	p := Pattern{Category: "Bash", Body: "npm test", Kind: Prefix}

	tests := []struct {
		name string
		cmd  shell.CoreCommand
		want bool
	}{
		{
			name: "exact body",
			cmd:  shell.CoreCommand{Executable: "npm", Arguments: "test"},
			want: true,
		},
		{
			name: "extension at token boundary",
			cmd:  shell.CoreCommand{Executable: "npm", Arguments: "test --coverage"},
			want: true,
		},
		{
			name: "partial word does not match",
			cmd:  shell.CoreCommand{Executable: "npm", Arguments: "testing"},
			want: false,
		},
		{
			name: "different executable",
			cmd:  shell.CoreCommand{Executable: "yarn", Arguments: "test"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.cmd, p); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestMatches_Exact(t *testing.T) {
	p := Pattern{Category: "Bash", Body: "git status", Kind: Exact}

	if !Matches(shell.CoreCommand{Executable: "git", Arguments: "status"}, p) {
		t.Error("exact pattern should match identical command")
	}
	if Matches(shell.CoreCommand{Executable: "git", Arguments: "status -s"}, p) {
		t.Error("exact pattern should not match extended command")
	}
}

func TestMatches_CaseSensitive(t *testing.T) {
	p := Pattern{Category: "Bash", Body: "npm test", Kind: Prefix}
	if Matches(shell.CoreCommand{Executable: "NPM", Arguments: "test"}, p) {
		t.Error("matching should be case-sensitive")
	}
}

func TestMatches_BareExecutable(t *testing.T) {
	p := Pattern{Category: "Bash", Body: "ls", Kind: Prefix}
	if !Matches(shell.CoreCommand{Executable: "ls"}, p) {
		t.Error("prefix pattern should match bare executable")
	}
	if Matches(shell.CoreCommand{Executable: "lsof"}, p) {
		t.Error("prefix pattern should not match longer executable name")
	}
}

func TestStore_MatchAllowDeny(t *testing.T) {
	store := Store{
		Allow: []Pattern{
			{Category: "Bash", Body: "npm test", Kind: Prefix},
			{Category: "Bash", Body: "git status", Kind: Exact},
		},
		Deny: []Pattern{
			{Category: "Bash", Body: "rm -rf", Kind: Prefix},
		},
	}

	cmd := shell.CoreCommand{Executable: "npm", Arguments: "test"}
	if p, ok := store.MatchAllow(cmd); !ok || p.Body != "npm test" {
		t.Errorf("MatchAllow(%v) = %v, %v; want npm test, true", cmd, p, ok)
	}
	if _, ok := store.MatchDeny(cmd); ok {
		t.Errorf("MatchDeny(%v) = true, want false", cmd)
	}

	danger := shell.CoreCommand{Executable: "rm", Arguments: "-rf /"}
	if _, ok := store.MatchDeny(danger); !ok {
		t.Errorf("MatchDeny(%v) = false, want true", danger)
	}
}

func TestStore_MergeKeepsDuplicates(t *testing.T) {
	a := Store{Allow: []Pattern{{Category: "Bash", Body: "npm test", Kind: Prefix}}}
	b := Store{
		Allow: []Pattern{{Category: "Bash", Body: "npm test", Kind: Prefix}},
		Deny:  []Pattern{{Category: "Bash", Body: "rm -rf", Kind: Prefix}},
	}

	a.Merge(b)
	if len(a.Allow) != 2 {
		t.Errorf("len(Allow) = %d, want 2 (duplicates harmless)", len(a.Allow))
	}
	if len(a.Deny) != 1 {
		t.Errorf("len(Deny) = %d, want 1", len(a.Deny))
	}
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3", a.Len())
	}
}
