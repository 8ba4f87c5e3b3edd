package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/store"
	"github.com/saandeep/portfolio-api/pkg/logger"
)

// fallbackReply is returned when the model is unavailable.
const fallbackReply = "I'm sorry, I'm having trouble responding right now. Please try again later or use the contact form."

// SEOTags is a generated set of SEO metadata for a blog post.
type SEOTags struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Service layers portfolio-aware operations over the generative client. The
// chatbot grounds its answers in the live projects, skills, and posts.
type Service struct {
	client   *Client
	projects *store.Store[models.Project]
	skills   *store.Store[models.Skill]
	posts    *store.Store[models.BlogPost]
	log      *zap.Logger
}

// NewService constructs the AI service.
func NewService(client *Client, projects *store.Store[models.Project], skills *store.Store[models.Skill], posts *store.Store[models.BlogPost]) *Service {
	return &Service{
		client:   client,
		projects: projects,
		skills:   skills,
		posts:    posts,
		log:      logger.WithModule("ai"),
	}
}

// Enabled reports whether generative features are available.
func (s *Service) Enabled() bool {
	return s.client != nil && s.client.Enabled()
}

// GenerateProjectDescription produces a short marketing description for a
// project from its title and technology list.
func (s *Service) GenerateProjectDescription(ctx context.Context, title string, technologies []string) (string, error) {
	prompt := fmt.Sprintf(
		"Generate a professional project description for a project titled %q using technologies: %s. Keep it concise and engaging.",
		title, strings.Join(technologies, ", "),
	)
	return s.client.GenerateText(ctx, prompt)
}

// GenerateBlogContent drafts a blog post from a topic and outline.
func (s *Service) GenerateBlogContent(ctx context.Context, topic, outline string) (string, error) {
	prompt := fmt.Sprintf(
		"You are a technical blog writer. Create engaging, informative content with code examples where appropriate. Write a blog post about %q with this outline: %s",
		topic, outline,
	)
	return s.client.GenerateText(ctx, prompt)
}

// GenerateSEOTags produces SEO metadata for a post. When the model is
// unavailable or returns malformed JSON, it falls back to the title and a
// truncated description so publishing never blocks on the model.
func (s *Service) GenerateSEOTags(ctx context.Context, title, content string) SEOTags {
	fallback := SEOTags{Title: title, Description: clip(content, 160)}

	prompt := fmt.Sprintf(
		"Generate SEO-optimized meta title, description, and keywords for the given content. Return as JSON with keys: title, description, keywords.\nTitle: %s\nContent: %s",
		title, clip(content, 500),
	)

	raw, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		if err != ErrDisabled {
			s.log.Warn("seo generation failed", zap.Error(err))
		}
		return fallback
	}

	var tags SEOTags
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &tags); err != nil {
		s.log.Warn("seo response not json", zap.Error(err))
		return fallback
	}
	if tags.Title == "" {
		tags.Title = title
	}
	if tags.Description == "" {
		tags.Description = fallback.Description
	}
	return tags
}

// ChatbotReply answers a visitor question grounded in the portfolio data.
// Failures degrade to a canned apology rather than an error.
func (s *Service) ChatbotReply(ctx context.Context, message string) string {
	prompt, err := s.buildChatPrompt(ctx, message)
	if err != nil {
		s.log.Warn("chat context failed", zap.Error(err))
		return fallbackReply
	}

	reply, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		if err != ErrDisabled {
			s.log.Warn("chat reply failed", zap.Error(err))
		}
		return fallbackReply
	}
	return reply
}

func (s *Service) buildChatPrompt(ctx context.Context, message string) (string, error) {
	projects, err := s.projects.Find(ctx, store.NewQuery().Limit(5))
	if err != nil {
		return "", err
	}
	skills, err := s.skills.Find(ctx, store.NewQuery().Limit(10))
	if err != nil {
		return "", err
	}
	posts, err := s.posts.Find(ctx, store.NewQuery().Where("published", true).OrderBy("created_at", store.Descending).Limit(5))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are a helpful assistant for a personal portfolio website. ")
	b.WriteString("You can answer questions about the owner's skills, projects, experience, and contact information.\n\n")

	b.WriteString("Current projects:\n")
	for _, p := range projects {
		fmt.Fprintf(&b, "- %s (%s)\n", p.Title, strings.Join(p.Technologies, ", "))
	}

	b.WriteString("Skills: ")
	names := make([]string, 0, len(skills))
	for _, sk := range skills {
		names = append(names, sk.Name)
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n")

	b.WriteString("Recent blog posts: ")
	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	b.WriteString(strings.Join(titles, ", "))
	b.WriteString("\n\n")

	b.WriteString("Keep responses concise, professional, and helpful. If asked about contact, direct them to the contact form.\n\n")
	b.WriteString("User question: ")
	b.WriteString(message)

	return b.String(), nil
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// stripCodeFence unwraps ```json fenced blocks that models often emit.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
