package provider

// Name identifies a supported LLM backend.
type Name string

const (
	OpenAI   Name = "openai"
	Ark      Name = "ark"
	Ollama   Name = "ollama"
	DeepSeek Name = "deepseek"
	NVIDIA   Name = "nvidia"
	Azure    Name = "azure"
	Custom   Name = "custom"
)

// Info captures the static configuration surface of a provider: which
// environment variables hold its credentials, its defaults, and what the
// backend can do with it. This is what GET /api/providers exposes.
type Info struct {
	Name              Name   `json:"name"`
	Label             string `json:"label"`
	Description       string `json:"description"`
	APIKeyEnv         string `json:"apiKeyEnv,omitempty"`
	BaseURLEnv        string `json:"baseUrlEnv,omitempty"`
	DefaultModel      string `json:"defaultModel"`
	DefaultBaseURL    string `json:"defaultBaseUrl,omitempty"`
	RequiresAPIKey    bool   `json:"requiresApiKey"`
	SupportsTools     bool   `json:"supportsTools"`
	SupportsStreaming bool   `json:"supportsStreaming"`
}

// Seed returns the built-in provider catalog. Providers marked OpenAI
// compatible (nvidia, azure, custom) are served through the openai client.
func Seed() []Info {
	return []Info{
		{
			Name:              OpenAI,
			Label:             "OpenAI",
			Description:       "OpenAI GPT models (GPT-4o, GPT-4.1)",
			APIKeyEnv:         "OPENAI_API_KEY",
			BaseURLEnv:        "OPENAI_BASE_URL",
			DefaultModel:      "gpt-4o",
			DefaultBaseURL:    "https://api.openai.com/v1",
			RequiresAPIKey:    true,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Name:              Ark,
			Label:             "Ark",
			Description:       "Volcengine Ark models (Doubao family)",
			APIKeyEnv:         "ARK_API_KEY",
			BaseURLEnv:        "ARK_BASE_URL",
			DefaultModel:      "doubao-pro-32k",
			DefaultBaseURL:    "https://ark.cn-beijing.volces.com/api/v3",
			RequiresAPIKey:    true,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Name:              Ollama,
			Label:             "Ollama",
			Description:       "Local Ollama models (run models on your own machine)",
			BaseURLEnv:        "OLLAMA_BASE_URL",
			DefaultModel:      "llama3.2",
			DefaultBaseURL:    "http://localhost:11434",
			RequiresAPIKey:    false,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Name:              DeepSeek,
			Label:             "DeepSeek",
			Description:       "DeepSeek chat and reasoner models",
			APIKeyEnv:         "DEEPSEEK_API_KEY",
			BaseURLEnv:        "DEEPSEEK_BASE_URL",
			DefaultModel:      "deepseek-chat",
			DefaultBaseURL:    "https://api.deepseek.com",
			RequiresAPIKey:    true,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Name:              NVIDIA,
			Label:             "Nvidia",
			Description:       "NVIDIA NIM API (OpenAI-compatible)",
			APIKeyEnv:         "NVIDIA_API_KEY",
			BaseURLEnv:        "NVIDIA_BASE_URL",
			DefaultModel:      "meta/llama-3.1-70b-instruct",
			DefaultBaseURL:    "https://integrate.api.nvidia.com/v1",
			RequiresAPIKey:    true,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Name:              Azure,
			Label:             "Azure",
			Description:       "Azure OpenAI deployments",
			APIKeyEnv:         "AZURE_API_KEY",
			BaseURLEnv:        "AZURE_BASE_URL",
			DefaultModel:      "gpt-4o",
			RequiresAPIKey:    true,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Name:              Custom,
			Label:             "Custom",
			Description:       "Custom OpenAI-compatible API endpoints",
			APIKeyEnv:         "CUSTOM_API_KEY",
			BaseURLEnv:        "CUSTOM_BASE_URL",
			DefaultModel:      "custom-model",
			RequiresAPIKey:    true,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
	}
}
