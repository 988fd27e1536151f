package mdrcluster

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ClusterTheme is the structured label the model produces for one cluster.
type ClusterTheme struct {
	Theme       string `json:"theme" jsonschema:"description=Short title naming the recurring complaint type"`
	Description string `json:"description" jsonschema:"description=One-sentence description of what the reports in this cluster have in common"`
}

// labelClusterWithAI asks the model to name the complaint type shared by a
// cluster's narratives, using JSON-schema structured output. Callers fall
// back to top TF-IDF terms when this fails or no API key is configured.
func labelClusterWithAI(narratives []string) (ClusterTheme, error) {
	apiKey := Config.OpenAIAPIKey
	if apiKey == "" {
		return ClusterTheme{}, fmt.Errorf("OPENAI_API_KEY not set")
	}

	// Generate JSON schema for structured output
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaObj := reflector.Reflect(&ClusterTheme{})
	if schemaObj.Type == "" {
		schemaObj.Type = "object"
	}

	schemaBytes, err := json.Marshal(schemaObj)
	if err != nil {
		return ClusterTheme{}, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schema any
	if err := json.Unmarshal(schemaBytes, &schema); err != nil {
		return ClusterTheme{}, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	// Keep the prompt bounded: a handful of narratives is enough to name
	// the complaint type.
	samples := make([]string, 0, 5)
	for _, s := range narratives[:min(5, len(narratives))] {
		if len(s) > 600 {
			s = s[:600]
		}
		samples = append(samples, s)
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	systemContent := "You are an expert reviewer of medical-device adverse-event reports. " +
		"Given several report narratives from the same cluster, name the recurring complaint type they share."
	userContent := fmt.Sprintf("Name the complaint type these adverse-event narratives have in common:\n\n%s",
		strings.Join(samples, "\n---\n"))

	chatCompletion, err := client.Chat.Completions.New(context.TODO(), openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemContent),
			openai.UserMessage(userContent),
		},
		Model:       openai.ChatModelGPT4_1,
		MaxTokens:   openai.Int(200),
		Temperature: openai.Float(0.1),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "cluster_theme",
					Description: openai.String("Name the recurring complaint type of an adverse-event cluster"),
					Schema:      schema,
					Strict:      openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return ClusterTheme{}, fmt.Errorf("failed to call OpenAI API: %w", err)
	}

	if len(chatCompletion.Choices) == 0 || chatCompletion.Choices[0].Message.Content == "" {
		return ClusterTheme{}, fmt.Errorf("no content in response")
	}

	var theme ClusterTheme
	if err := json.Unmarshal([]byte(chatCompletion.Choices[0].Message.Content), &theme); err != nil {
		return ClusterTheme{}, fmt.Errorf("failed to parse structured response: %w", err)
	}
	return theme, nil
}
