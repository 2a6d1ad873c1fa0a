package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"unicode/utf8"

	"ainewsagg/internal/config"
	"ainewsagg/internal/models"

	openai "github.com/sashabaranov/go-openai"
)

const maxDescriptionLength = 500

const systemPrompt = "You are an AI news categorization assistant. Analyze the article and return JSON with category, relevance score, and relevant industries."

const promptTemplate = `Categorize this AI news article, rate its importance (0-100), and identify relevant industries:

Title: %s
Description: %s

Categories:
- breakthrough: Major AI breakthroughs, new capabilities, research advances
- company_announcement: Product launches, partnerships, company news
- policy: Regulations, policy changes, legal issues
- funding: Funding rounds, M&A, investments
- research: Academic papers, research findings
- other: Everything else

Industries (select ALL that apply):
- oil_gas: Oil & Gas, Energy sector
- medical: Healthcare, Medical, Pharmaceuticals, Biotech
- hospitality: Hotels, Tourism, Travel, Restaurants
- real_estate: Real Estate, Property, Construction
- education: Education, EdTech, Training
- finance: Finance, Banking, FinTech, Insurance
- technology: General Technology, Software, Hardware
- manufacturing: Manufacturing, Industrial, Supply Chain
- retail: Retail, E-commerce, Consumer goods
- other: Other industries

Return JSON with:
- category: one of the above categories
- score: relevance/importance score 0-100 (consider: impact, novelty, source credibility)
- industries: array of relevant industry tags (can be multiple)`

const summarySystemPrompt = "You are a helpful assistant that creates concise summaries of AI news articles."

const summaryPromptTemplate = `Summarize the following AI news article in 2-3 concise sentences. Focus on the key points and main takeaways.

Title: %s

Content: %s

Provide only the summary, no additional text.`

// classificationSchema constrains the model to the fixed category and
// industry vocabularies.
const classificationSchema = `{
	"type": "object",
	"properties": {
		"category": {
			"type": "string",
			"enum": ["breakthrough", "company_announcement", "policy", "funding", "research", "other"],
			"description": "The category of the article"
		},
		"score": {
			"type": "integer",
			"description": "Relevance score from 0 to 100"
		},
		"industries": {
			"type": "array",
			"items": {
				"type": "string",
				"enum": ["oil_gas", "medical", "hospitality", "real_estate", "education", "finance", "technology", "manufacturing", "retail", "other"]
			},
			"description": "Array of relevant industries"
		}
	},
	"required": ["category", "score", "industries"],
	"additionalProperties": false
}`

// Classifier tags articles through an OpenAI-compatible chat backend.
// Classification is an enrichment, not a gate: every failure path falls
// back to default tags so item ingestion is never blocked.
type Classifier struct {
	client *openai.Client
	model  string
}

func New(cfg config.LLMConfig) *Classifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Classifier{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

// Classify asks the LLM for a category, relevance score and industry tag
// set for the given article text. The score is clamped into [0,100] and
// out-of-vocabulary values are dropped. Never returns an error.
func (c *Classifier) Classify(ctx context.Context, title, description string) models.Classification {
	if len(description) > maxDescriptionLength {
		cut := maxDescriptionLength
		for cut > 0 && !utf8.RuneStart(description[cut]) {
			cut--
		}
		description = description[:cut]
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, title, description)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "article_analysis",
				Schema: json.RawMessage(classificationSchema),
				Strict: true,
			},
		},
	})
	if err != nil {
		log.Printf("Error classifying article %q: %v", title, err)
		return models.DefaultClassification()
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return models.DefaultClassification()
	}

	var parsed struct {
		Category   string   `json:"category"`
		Score      int      `json:"score"`
		Industries []string `json:"industries"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		log.Printf("Error parsing classification for %q: %v", title, err)
		return models.DefaultClassification()
	}

	result := models.Classification{
		Category:   models.Category(parsed.Category),
		Score:      clampScore(parsed.Score),
		Industries: []models.Industry{},
	}
	if !result.Category.Valid() {
		result.Category = models.CategoryOther
	}
	for _, tag := range parsed.Industries {
		industry := models.Industry(tag)
		if industry.Valid() {
			result.Industries = append(result.Industries, industry)
		}
	}
	return result
}

// Summarize generates a short on-demand summary for a stored article.
// Unlike Classify this surfaces errors: the caller decides what a failed
// summary means for its request.
func (c *Classifier) Summarize(ctx context.Context, article *models.Article) (string, error) {
	content := article.Description
	if content == "" {
		content = article.Content
	}
	if content == "" {
		content = article.Title
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(summaryPromptTemplate, article.Title, content)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %v", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty summary response")
	}
	return resp.Choices[0].Message.Content, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
