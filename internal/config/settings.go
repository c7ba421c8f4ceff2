package config

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// agentSettings is the subset of an agent-native settings file that cmdgate
// reads: .claude/settings.json and .claude/settings.local.json carry
// permissions.allow and permissions.deny lists in the same Category(body)
// rule form as the YAML files. Settings files may contain comments, so they
// are treated as JSONC. Unknown fields are ignored: the file belongs to the
// agent, not to cmdgate.
type agentSettings struct {
	Permissions agentPermissions `json:"permissions"`
}

type agentPermissions struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
}

// ParseAgentSettings parses JSONC data from an agent settings file.
func ParseAgentSettings(data []byte) (*PermissionsConfig, error) {
	var s agentSettings
	if err := json.Unmarshal(jsonc.ToJSON(data), &s); err != nil {
		return nil, fmt.Errorf("parse agent settings: %w", err)
	}
	return &PermissionsConfig{
		Allow: s.Permissions.Allow,
		Deny:  s.Permissions.Deny,
	}, nil
}
