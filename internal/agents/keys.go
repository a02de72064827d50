package agents

// APIKey describes one credential an agent reads from the environment.
type APIKey struct {
	EnvVar      string
	DisplayName string
	Agent       Name
	Hint        string
}

var apiKeys = []APIKey{
	{
		EnvVar:      "ANTHROPIC_API_KEY",
		DisplayName: "Anthropic API key",
		Agent:       Claude,
		Hint:        "https://console.anthropic.com/settings/keys",
	},
	{
		EnvVar:      "OPENAI_API_KEY",
		DisplayName: "OpenAI API key",
		Agent:       Codex,
		Hint:        "https://platform.openai.com/api-keys",
	},
	{
		EnvVar:      "GITHUB_TOKEN",
		DisplayName: "GitHub token",
		Agent:       Copilot,
		Hint:        "https://github.com/settings/tokens (needs the Copilot Requests permission)",
	},
	{
		EnvVar:      "GEMINI_API_KEY",
		DisplayName: "Gemini API key",
		Agent:       Gemini,
		Hint:        "https://aistudio.google.com/apikey",
	},
	{
		EnvVar:      "AMP_API_KEY",
		DisplayName: "Amp API key",
		Agent:       Amp,
		Hint:        "https://ampcode.com/settings",
	},
}

// APIKeys returns the API key table in display order. The returned slice is a
// copy.
func APIKeys() []APIKey {
	out := make([]APIKey, len(apiKeys))
	copy(out, apiKeys)
	return out
}

// IsKnownKey reports whether envVar is in the API key table.
func IsKnownKey(envVar string) bool {
	for _, k := range apiKeys {
		if k.EnvVar == envVar {
			return true
		}
	}
	return false
}

// KeysFor returns the API keys owned by agent.
func KeysFor(agent Name) []APIKey {
	var out []APIKey
	for _, k := range apiKeys {
		if k.Agent == agent {
			out = append(out, k)
		}
	}
	return out
}
