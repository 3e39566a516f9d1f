package embedding

import "fmt"

func NewProvider(providerType, model, openAIBaseURL, openAIKey, ollamaBaseURL string) (EmbeddingProvider, error) {
	switch providerType {
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("openai embedding provider requires OPENAI_API_KEY")
		}
		return NewOpenAIProvider(openAIBaseURL, openAIKey, model), nil
	case "ollama":
		return NewOllamaProvider(ollamaBaseURL, model), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}
